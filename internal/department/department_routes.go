package department

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/domain"
	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.GetAll)
		departments.GET("/:id", middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager), handler.GetById)
		departments.POST("", middleware.RequireRoles(domain.RoleAdminHR), handler.Create)
		departments.PUT("/:id", middleware.RequireRoles(domain.RoleAdminHR), handler.Update)
		departments.DELETE("/:id", middleware.RequireRoles(domain.RoleAdminHR), handler.Delete)
	}
}
