package controllers

import (
	"context"
	"net/http"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/internal/services"
	"laundry-system/pkg/middleware"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DriverController обслуживает и справочник водителей, и действия
// из приложения водителя (мои заказы, забор, рейс, вручение).
type DriverController struct {
	driverService   services.DriverServiceInterface
	workflowService services.DriverWorkflowServiceInterface
	logger          *zap.Logger
}

func NewDriverController(
	driverService services.DriverServiceInterface,
	workflowService services.DriverWorkflowServiceInterface,
	logger *zap.Logger,
) *DriverController {
	return &DriverController{
		driverService:   driverService,
		workflowService: workflowService,
		logger:          logger,
	}
}

func (c *DriverController) CreateDriver(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateDriverDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	driver, err := c.driverService.Create(reqCtx, businessID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, driver, "Водитель успешно создан", http.StatusCreated)
}

func (c *DriverController) GetDrivers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	drivers, err := c.driverService.List(reqCtx, businessID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, drivers, "Список водителей успешно получен", http.StatusOK)
}

func (c *DriverController) UpdateDriver(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	driverID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDriverDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	driver, err := c.driverService.Update(reqCtx, businessID, driverID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, driver, "Водитель успешно обновлен", http.StatusOK)
}

func (c *DriverController) AssignDriver(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignDriverDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.workflowService.AssignDriver(reqCtx, businessID, orderID, actorFromContext(ctx), payload)
	middleware.RecordOrderOperation("assign_driver", err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Водитель успешно назначен", http.StatusOK)
}

// --- Эндпоинты приложения водителя ---

func (c *DriverController) GetMyOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	driverID, err := utils.GetDriverIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	orders, err := c.workflowService.MyOrders(reqCtx, businessID, driverID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, orders, "Заказы водителя успешно получены", http.StatusOK)
}

func (c *DriverController) PickupOrder(ctx echo.Context) error {
	return c.driverAction(ctx, "pickup", c.workflowService.Pickup, "Заказ забран у клиента")
}

func (c *DriverController) StartDelivery(ctx echo.Context) error {
	return c.driverAction(ctx, "start_delivery", c.workflowService.StartDelivery, "Заказ передан в доставку")
}

func (c *DriverController) DeliverOrder(ctx echo.Context) error {
	return c.driverAction(ctx, "deliver", c.workflowService.Deliver, "Заказ вручен клиенту")
}

type driverActionFn func(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error)

func (c *DriverController) driverAction(ctx echo.Context, operation string, fn driverActionFn, message string) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	driverID, err := utils.GetDriverIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := fn(reqCtx, businessID, orderID, driverID, actorFromContext(ctx))
	middleware.RecordOrderOperation(operation, err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, message, http.StatusOK)
}
