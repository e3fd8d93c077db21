package controllers

import (
	"net/http"

	"laundry-system/internal/dto"
	"laundry-system/internal/services"
	"laundry-system/pkg/constants"
	"laundry-system/pkg/middleware"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService  services.OrderServiceInterface
	statusService services.OrderStatusServiceInterface
	logger        *zap.Logger
}

func NewOrderController(
	orderService services.OrderServiceInterface,
	statusService services.OrderStatusServiceInterface,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		orderService:  orderService,
		statusService: statusService,
		logger:        logger,
	}
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.Create(reqCtx, businessID, actorFromContext(ctx), payload)
	middleware.RecordOrderOperation("create", err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Заказ успешно создан", http.StatusCreated)
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	orders, total, err := c.orderService.List(reqCtx, businessID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, orders, "Список заказов успешно получен", http.StatusOK, total)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.GetByID(reqCtx, businessID, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Заказ успешно найден", http.StatusOK)
}

func (c *OrderController) GetOrderHistory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	history, err := c.orderService.GetHistory(reqCtx, businessID, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, history, "История заказа успешно получена", http.StatusOK)
}

func (c *OrderController) AddOrderItems(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AddOrderItemsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.AddItems(reqCtx, businessID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Вещи успешно добавлены в заказ", http.StatusOK)
}

func (c *OrderController) TransitionOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.TransitionOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.statusService.ApplyTransition(reqCtx, services.TransitionParams{
		BusinessID: businessID,
		OrderID:    orderID,
		Expected:   constants.OrderStatus(payload.ExpectedStatus),
		Target:     constants.OrderStatus(payload.TargetStatus),
		Actor:      actorFromContext(ctx),
		Notes:      payload.Notes,
	})
	middleware.RecordOrderOperation("transition", err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Статус заказа успешно изменен", http.StatusOK)
}

func (c *OrderController) CancelOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CancelOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.statusService.Cancel(reqCtx, businessID, orderID, actorFromContext(ctx), payload.Notes)
	middleware.RecordOrderOperation("cancel", err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Заказ успешно отменен", http.StatusOK)
}
