package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"laundry-system/internal/repositories"
	"laundry-system/internal/services"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetOrdersReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	from, to := c.parsePeriod(ctx)
	format := strings.ToLower(ctx.QueryParam("format"))

	rows, err := c.reportService.GetOrdersReport(reqCtx, businessID, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}

	return utils.SuccessResponse(ctx, rows, "Отчет по заказам успешно сформирован", http.StatusOK)
}

// parsePeriod читает границы периода; по умолчанию последние 30 дней.
func (c *ReportController) parsePeriod(ctx echo.Context) (time.Time, time.Time) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			from = t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			to = t
		}
	}
	return from, to
}

var reportHeaders = []string{
	"Номер заказа", "Клиент", "Филиал", "Статус", "Статус оплаты",
	"Сумма", "Оплачено", "Дата создания", "Дата завершения",
}

func reportRowToSlice(row repositories.OrderReportRow) []interface{} {
	dateFmt := "02.01.2006 15:04"
	var completed string
	if row.CompletedDate != nil {
		completed = row.CompletedDate.Format(dateFmt)
	}

	return []interface{}{
		row.OrderNumber, row.CustomerName, row.StoreName, row.Status.String(), string(row.PaymentStatus),
		row.TotalAmount, row.PaidAmount, row.CreatedAt.Format(dateFmt), completed,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []repositories.OrderReportRow) error {
	f := excelize.NewFile()
	sheet := "Отчет по заказам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := reportRowToSlice(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "A", "C", 22)
	f.SetColWidth(sheet, "D", "E", 18)
	f.SetColWidth(sheet, "H", "I", 20)

	fileName := fmt.Sprintf("orders_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
