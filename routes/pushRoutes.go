package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
)

func PushRoutes(server *gin.Engine) {
	push := server.Group("/push", middlewares.RequireAuth())
	{
		push.GET("/key", controllers.GetPushPublicKey)
		push.POST("/subscribe", controllers.SubscribePush)
		push.DELETE("/subscribe", controllers.UnsubscribePush)
	}
}
