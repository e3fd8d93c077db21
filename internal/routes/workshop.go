package routes

import (
	"laundry-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runWorkshopRouter(g *echo.Group, workshopCtrl *controllers.WorkshopController) {
	g.GET("/workshop/items", workshopCtrl.GetWorkshopItems)
	g.POST("/workshop/items/:itemId/return", workshopCtrl.MarkItemReturned)
	g.POST("/workshop/items/:itemId/ready", workshopCtrl.ReturnItemToStore)
}
