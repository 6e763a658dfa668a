package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
	"github.com/sokoni-store/sokoni-api/models"
)

func AuditRoutes(server *gin.Engine) {
	audit := server.Group("/audit", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin))
	{
		audit.GET("", controllers.GetAuditLog)
		audit.GET("/stats", controllers.GetAuditStats)
		audit.GET("/:entityType/:entityId", controllers.GetEntityTimeline)
	}
}
