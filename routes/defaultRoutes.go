package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
	"github.com/sokoni-store/sokoni-api/models"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/cities", controllers.GetCities)
	server.PUT("/cities", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin), controllers.UpdateCities)
	server.POST("/newsletter", controllers.SubscribeNewsletter)
	server.DELETE("/newsletter/:email", controllers.UnsubscribeNewsletter)
}
