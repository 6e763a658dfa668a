package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
	"github.com/sokoni-store/sokoni-api/models"
)

func NotificationRoutes(server *gin.Engine) {
	notification := server.Group("/notification", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleViewer))
	{
		notification.GET("", controllers.GetNotifications)
		notification.PATCH("/:id/read", controllers.MarkNotificationRead)
		notification.POST("/read-all", controllers.MarkAllNotificationsRead)
		notification.DELETE("/:id", controllers.DeleteNotification)
	}
}
