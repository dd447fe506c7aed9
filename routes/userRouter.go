package routes

import (
	controller "go-canteen-ordering/controllers"
	"go-canteen-ordering/middleware"
	"go-canteen-ordering/session"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/signup", controller.SignUp())
	incomingRoutes.POST("/users/login", controller.Login())
	incomingRoutes.POST("/users/forgot-password", controller.ForgotPassword())
	incomingRoutes.POST("/users/reset-password", controller.ResetPassword())
}

func AuthedUserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/users", middleware.Authorize(session.RoleAdmin), controller.GetUsers())
	incomingRoutes.GET("/users/:user_id", controller.GetUser())
}
