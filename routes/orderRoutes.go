package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/middlewares"
	"github.com/sokoni-store/sokoni-api/models"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/order", middlewares.RateLimit(controllers.KV, 10, time.Minute), controllers.CreateOrder)

	admin := server.Group("/order", middlewares.RequireAuth())
	{
		admin.GET("", middlewares.RequireRole(models.RoleViewer), controllers.GetOrders)
		admin.GET("/undelivered", middlewares.RequireRole(models.RoleViewer), controllers.GetUndeliveredOrders)
		admin.GET("/:orderId", middlewares.RequireRole(models.RoleViewer), controllers.GetOrderById)
		admin.GET("/customer/:customerId", middlewares.RequireRole(models.RoleViewer), controllers.GetOrdersByCustomer)
		admin.PATCH("/:orderId", middlewares.RequireRole(models.RoleManager), controllers.UpdateOrder)
		admin.DELETE("/:orderId", middlewares.RequireRole(models.RoleSuperAdmin), controllers.DeleteOrder)
	}
}
