package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/controllers"
	"github.com/ppgstore/ppg-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/categories", controllers.GetCategories)
	server.GET("/categories/:categoryId/products", controllers.GetProductsByCategory)
	server.GET("/products/newest", controllers.GetNewestProducts)
	server.GET("/products/:id", controllers.GetProduct)

	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/products", controllers.GetAdminProducts)
		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.PATCH("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		admin.GET("/categories", controllers.GetAdminCategories)
		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:categoryId", controllers.UpdateCategory)
		admin.PATCH("/categories/:categoryId", controllers.UpdateCategory)
		admin.DELETE("/categories/:categoryId", controllers.DeleteCategory)
	}
}
