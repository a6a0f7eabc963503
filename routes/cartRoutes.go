package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/controllers"
	"github.com/ppgstore/ppg-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/add", controllers.AddToCart)
		cart.PUT("/update/:itemId", controllers.UpdateCartItem)
		cart.DELETE("/remove/:itemId", controllers.RemoveCartItem)
	}
}
