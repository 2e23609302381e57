package attendance

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/domain"
	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in", handler.CheckIn)
		attendances.POST("/check-out", handler.CheckOut)
		attendances.GET("/me", handler.GetSelf)

		attendances.GET("", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.List)
	}
}
