package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
	"github.com/sokoni-store/sokoni-api/models"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)

	manage := server.Group("/", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleManager))
	{
		manage.POST("/product", controllers.CreateProduct)
		manage.PATCH("/product/:id/archive", controllers.ArchiveProduct)
		manage.POST("/product-images", controllers.UploadProductImages)
	}
}
