package routes

import (
	"laundry-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runDirectoryRouter(g *echo.Group, customerCtrl *controllers.CustomerController, storeCtrl *controllers.StoreController) {
	g.POST("/customers", customerCtrl.CreateCustomer)
	g.GET("/customers", customerCtrl.GetCustomers)
	g.GET("/customers/:id", customerCtrl.FindCustomer)

	g.POST("/stores", storeCtrl.CreateStore)
	g.GET("/stores", storeCtrl.GetStores)
	g.GET("/stores/:id", storeCtrl.FindStore)
}
