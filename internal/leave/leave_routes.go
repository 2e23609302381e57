package leave

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/domain"
	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", handler.Submit)
		leaves.GET("/me", handler.GetSelf)
		leaves.PUT("/:id", handler.UpdateSelf)
		leaves.DELETE("/:id", handler.DeleteSelf)

		leaves.GET("", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.List)
		leaves.PUT("/:id/review", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.Review)
	}
}
