package controllers

import (
	"net/http"

	"laundry-system/internal/dto"
	"laundry-system/internal/services"
	"laundry-system/pkg/middleware"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
	logger         *zap.Logger
}

func NewPaymentController(paymentService services.PaymentServiceInterface, logger *zap.Logger) *PaymentController {
	return &PaymentController{paymentService: paymentService, logger: logger}
}

func (c *PaymentController) RecordPayment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	businessID, err := utils.GetBusinessIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RecordPaymentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.paymentService.RecordPayment(reqCtx, businessID, orderID, actorFromContext(ctx), payload)
	middleware.RecordOrderOperation("record_payment", err == nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, order, "Оплата успешно зачислена", http.StatusOK)
}
