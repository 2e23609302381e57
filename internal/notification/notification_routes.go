package notification

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handler.ListOwn)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PUT("/:id/read", handler.MarkRead)
		notifications.PUT("/read-all", handler.MarkAllRead)
	}
}
