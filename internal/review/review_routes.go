package review

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/domain"
	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.GET("/me", handler.ListSelf)

		privileged := reviews.Group("")
		privileged.Use(middleware.RequireRoles(domain.RoleAdminHR, domain.RoleManager))
		{
			privileged.POST("", handler.Create)
			privileged.PUT("/:id", handler.Update)
			privileged.DELETE("/:id", handler.Delete)
			privileged.GET("/employee/:id/statistics", handler.Statistics)
			privileged.GET("/employee/:id/chart", handler.YearlyChart)
			privileged.GET("/employee/:id/trend", handler.Trend)
		}
	}
}
