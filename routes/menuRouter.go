package routes

import (
	controller "go-canteen-ordering/controllers"
	"go-canteen-ordering/middleware"
	"go-canteen-ordering/session"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menu", controller.GetMenuItems())
	incomingRoutes.GET("/menu/categories", controller.GetMenuCategories())
	incomingRoutes.GET("/menu/:menu_item_id", controller.GetMenuItem())
	incomingRoutes.POST("/menu", middleware.Authorize(session.RoleAdmin), controller.CreateMenuItem())
	incomingRoutes.PATCH("/menu/:menu_item_id", middleware.Authorize(session.RoleAdmin), controller.UpdateMenuItem())
	incomingRoutes.DELETE("/menu/:menu_item_id", middleware.Authorize(session.RoleAdmin), controller.DeleteMenuItem())
}
