package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
)

func CartRoutes(server *gin.Engine) {
	server.POST("/cart", controllers.CreateCartItem)
	server.GET("/cart/:userId", controllers.GetCart)
}
