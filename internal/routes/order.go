package routes

import (
	"laundry-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runOrderRouter(
	g *echo.Group,
	orderCtrl *controllers.OrderController,
	paymentCtrl *controllers.PaymentController,
	workshopCtrl *controllers.WorkshopController,
	driverCtrl *controllers.DriverController,
) {
	g.POST("/orders", orderCtrl.CreateOrder)
	g.GET("/orders", orderCtrl.GetOrders)
	g.GET("/orders/:id", orderCtrl.FindOrder)
	g.GET("/orders/:id/history", orderCtrl.GetOrderHistory)
	g.POST("/orders/:id/items", orderCtrl.AddOrderItems)
	g.POST("/orders/:id/transition", orderCtrl.TransitionOrder)
	g.POST("/orders/:id/cancel", orderCtrl.CancelOrder)
	g.POST("/orders/:id/assign-driver", driverCtrl.AssignDriver)
	g.POST("/orders/:id/payments", paymentCtrl.RecordPayment)
	g.POST("/orders/:id/workshop", workshopCtrl.SendToWorkshop)
}
