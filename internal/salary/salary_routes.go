package salary

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hris-backend/internal/domain"
	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("/me", handler.ListSelf)

		admin := salaries.Group("")
		admin.Use(middleware.RequireRoles(domain.RoleAdminHR))
		{
			// Payroll creation retries must not mint a second slip.
			admin.POST("", middleware.Idempotency(rdb), handler.Create)
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
			admin.GET("", handler.List)
		}
	}
}
