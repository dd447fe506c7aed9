package routes

import (
	controller "go-canteen-ordering/controllers"
	"go-canteen-ordering/middleware"
	"go-canteen-ordering/session"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.POST("/orders", controller.PlaceOrder())
	incomingRoutes.PATCH("/orders/:order_id/status",
		middleware.Authorize(session.RoleAdmin, session.RoleCashier), controller.UpdateOrderStatus())
	incomingRoutes.PATCH("/orders/:order_id/payment",
		middleware.Authorize(session.RoleAdmin, session.RoleCashier), controller.UpdatePaymentStatus())
}

func OrderItemRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orderitems",
		middleware.Authorize(session.RoleAdmin, session.RoleCashier), controller.GetOrderItems())
	incomingRoutes.GET("/orderitems/:order_id", controller.GetOrderItemsByOrder())
}
