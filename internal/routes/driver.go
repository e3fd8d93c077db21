package routes

import (
	"laundry-system/internal/controllers"
	"laundry-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDriverRouter(g *echo.Group, driverCtrl *controllers.DriverController, authMW *middleware.AuthMiddleware) {
	g.POST("/drivers", driverCtrl.CreateDriver)
	g.GET("/drivers", driverCtrl.GetDrivers)
	g.PUT("/drivers/:id", driverCtrl.UpdateDriver)

	// Приложение водителя: токен должен нести driver_id.
	driverApp := g.Group("/driver", authMW.RequireDriver)
	driverApp.GET("/orders", driverCtrl.GetMyOrders)
	driverApp.POST("/orders/:id/pickup", driverCtrl.PickupOrder)
	driverApp.POST("/orders/:id/start-delivery", driverCtrl.StartDelivery)
	driverApp.POST("/orders/:id/deliver", driverCtrl.DeliverOrder)
}
