package controllers

import (
	"context"
	"net/http"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/internal/repositories"
	"laundry-system/internal/services"
	"laundry-system/pkg/middleware"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorkshopController struct {
	workshopService services.WorkshopServiceInterface
	logger          *zap.Logger
}

func NewWorkshopController(workshopService services.WorkshopServiceInterface, logger *zap.Logger) *WorkshopController {
	return &WorkshopController{workshopService: workshopService, logger: logger}
}

func (c *WorkshopController) SendToWorkshop(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SendToWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	sent, err := c.workshopService.SendToWorkshop(reqCtx, businessID, orderID, actorFromContext(ctx), payload)
	middleware.RecordOrderOperation("send_to_workshop", err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]interface{}{"sent": sent}, "Вещи успешно отправлены в цех", http.StatusOK)
}

func (c *WorkshopController) GetWorkshopItems(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tab := repositories.WorkshopTab(ctx.QueryParam("tab"))
	if tab == "" {
		tab = repositories.WorkshopTabProcessing
	}

	items, err := c.workshopService.ListItems(reqCtx, businessID, tab)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, items, "Вещи цеха успешно получены", http.StatusOK)
}

func (c *WorkshopController) MarkItemReturned(ctx echo.Context) error {
	return c.itemReturn(ctx, "workshop_return", c.workshopService.MarkReturned, "Вещь принята из цеха")
}

func (c *WorkshopController) ReturnItemToStore(ctx echo.Context) error {
	return c.itemReturn(ctx, "workshop_ready", c.workshopService.ReturnToStore, "Вещь готова к выдаче")
}

func (c *WorkshopController) itemReturn(
	ctx echo.Context,
	operation string,
	fn func(reqCtx context.Context, businessID, itemID uint64, actor entities.Actor, data dto.ReturnItemDTO) error,
	message string,
) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	itemID, err := parseIDParam(ctx, "itemId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ReturnItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	err = fn(reqCtx, businessID, itemID, actorFromContext(ctx), payload)
	middleware.RecordOrderOperation(operation, err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, message, http.StatusOK)
}
