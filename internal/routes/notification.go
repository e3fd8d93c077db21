package routes

import (
	"laundry-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runNotificationRouter(g *echo.Group, notificationCtrl *controllers.NotificationController) {
	g.GET("/notifications", notificationCtrl.GetNotifications)
	g.POST("/notifications/:id/read", notificationCtrl.MarkRead)
	g.POST("/notifications/read-all", notificationCtrl.MarkAllRead)
	g.DELETE("/notifications/:id", notificationCtrl.DeleteNotification)
}
