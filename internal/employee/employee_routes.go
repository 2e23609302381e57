package employee

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/domain"
	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/me", handler.GetMe)
		employees.GET("", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.GetAll)
		employees.GET("/:id", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.GetById)
		employees.POST("", middleware.RequireRoles(domain.RoleAdminHR), handler.Create)
		employees.PUT("/:id", middleware.RequireRoles(domain.RoleAdminHR), handler.Update)
		employees.DELETE("/:id", middleware.RequireRoles(domain.RoleAdminHR), handler.Delete)
	}
}
