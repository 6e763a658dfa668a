package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
	"github.com/sokoni-store/sokoni-api/models"
)

func CustomerRoutes(server *gin.Engine) {
	customer := server.Group("/customer", middlewares.RequireAuth())
	{
		customer.GET("", middlewares.RequireRole(models.RoleViewer), controllers.GetCustomers)
		customer.GET("/:id", middlewares.RequireRole(models.RoleViewer), controllers.GetCustomer)
		customer.PATCH("/:id/block", middlewares.RequireRole(models.RoleAdmin), controllers.BlockCustomer)
	}
}
