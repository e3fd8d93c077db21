package routes

import (
	"laundry-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runDashboardRouter(g *echo.Group, dashboardCtrl *controllers.DashboardController, reportCtrl *controllers.ReportController) {
	g.GET("/dashboard/stats", dashboardCtrl.GetStats)
	g.GET("/reports/orders", reportCtrl.GetOrdersReport)
}
