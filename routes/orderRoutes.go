package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/controllers"
	"github.com/ppgstore/ppg-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.GET("", controllers.GetOrders)
		orders.POST("/create", controllers.CreateOrder)
		orders.GET("/:orderId", controllers.GetOrder)

		admin := orders.Group("/admin", middlewares.RequireAdmin())
		{
			admin.GET("", controllers.GetAdminOrders)
			admin.PUT("/:orderId", controllers.UpdateOrderStatus)
			admin.PATCH("/:orderId", controllers.UpdateOrderStatus)
			admin.DELETE("/:orderId", controllers.DeleteOrder)
		}
	}
}
