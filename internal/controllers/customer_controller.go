package controllers

import (
	"net/http"

	"laundry-system/internal/dto"
	"laundry-system/internal/services"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CustomerController struct {
	customerService services.CustomerServiceInterface
	logger          *zap.Logger
}

func NewCustomerController(customerService services.CustomerServiceInterface, logger *zap.Logger) *CustomerController {
	return &CustomerController{customerService: customerService, logger: logger}
}

func (c *CustomerController) CreateCustomer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateCustomerDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	customer, err := c.customerService.Create(reqCtx, businessID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, customer, "Клиент успешно создан", http.StatusCreated)
}

func (c *CustomerController) GetCustomers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	customers, err := c.customerService.List(reqCtx, businessID, ctx.QueryParam("search"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, customers, "Список клиентов успешно получен", http.StatusOK)
}

func (c *CustomerController) FindCustomer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	customerID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	customer, err := c.customerService.GetByID(reqCtx, businessID, customerID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, customer, "Клиент успешно найден", http.StatusOK)
}
