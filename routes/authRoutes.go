package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/controllers"
	"github.com/ppgstore/ppg-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/login/refresh", controllers.RefreshToken)

		profile := auth.Group("/profile", middlewares.RequireAuth())
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PATCH("", controllers.UpdateProfile)
		}

		admin := auth.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.GET("/users", controllers.GetUsers)
			admin.PUT("/users/:userId", controllers.UpdateUser)
			admin.DELETE("/users/:userId", controllers.DeleteUser)
		}
	}
}
