package routes

import (
	controller "go-canteen-ordering/controllers"
	"go-canteen-ordering/middleware"
	"go-canteen-ordering/session"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/dashboard/admin",
		middleware.Authorize(session.RoleAdmin), controller.AdminDashboard())
	incomingRoutes.GET("/dashboard/cashier",
		middleware.Authorize(session.RoleAdmin, session.RoleCashier), controller.CashierDashboard())
	incomingRoutes.GET("/salesByDates/:startDate/:endDate",
		middleware.Authorize(session.RoleAdmin), controller.GetSalesByDates())
}

func NotificationRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/notifications", controller.GetNotifications())
	incomingRoutes.PATCH("/notifications/:notification_id", controller.MarkNotificationRead())
}

// NotificationSocket is registered before the auth middleware; the websocket
// handshake cannot carry the token header from a browser.
func NotificationSocket(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/ws", controller.HandleWebSocket())
}
