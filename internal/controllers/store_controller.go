package controllers

import (
	"net/http"

	"laundry-system/internal/dto"
	"laundry-system/internal/services"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StoreController struct {
	storeService services.StoreServiceInterface
	logger       *zap.Logger
}

func NewStoreController(storeService services.StoreServiceInterface, logger *zap.Logger) *StoreController {
	return &StoreController{storeService: storeService, logger: logger}
}

func (c *StoreController) CreateStore(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateStoreDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	store, err := c.storeService.Create(reqCtx, businessID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, store, "Филиал успешно создан", http.StatusCreated)
}

func (c *StoreController) GetStores(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	stores, err := c.storeService.List(reqCtx, businessID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, stores, "Список филиалов успешно получен", http.StatusOK)
}

func (c *StoreController) FindStore(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	storeID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	store, err := c.storeService.GetByID(reqCtx, businessID, storeID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, store, "Филиал успешно найден", http.StatusOK)
}
