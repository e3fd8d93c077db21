package services

import (
	"context"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/internal/events"
	"laundry-system/internal/repositories"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentServiceInterface interface {
	RecordPayment(ctx context.Context, businessID, orderID uint64, actor entities.Actor, data dto.RecordPaymentDTO) (*entities.Order, error)
}

// PaymentService зачисляет оплаты по заказу.
// Строка заказа блокируется на время пересчета: конкурентные оплаты
// сериализуются и не могут совместно превысить сумму заказа.
type PaymentService struct {
	orderRepo repositories.OrderRepositoryInterface
	txManager repositories.TxManagerInterface
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewPaymentService(
	orderRepo repositories.OrderRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) PaymentServiceInterface {
	return &PaymentService{
		orderRepo: orderRepo,
		txManager: txManager,
		bus:       bus,
		logger:    logger,
	}
}

// RecordPayment добавляет сумму к оплаченному и выводит статус оплаты
// заново из пары (оплачено, итого). Переплата отклоняется целиком,
// состояние заказа при этом не меняется.
func (s *PaymentService) RecordPayment(ctx context.Context, businessID, orderID uint64, actor entities.Actor, data dto.RecordPaymentDTO) (*entities.Order, error) {
	var order *entities.Order

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, businessID, orderID)
		if err != nil {
			return err
		}
		if order.Status == constants.StatusCancelled {
			return apperrors.ErrOrderTerminal
		}

		newPaid := order.PaidAmount + data.Amount
		if newPaid > order.TotalAmount {
			return apperrors.ErrPaymentExceedsTotal
		}

		newStatus := constants.DerivePaymentStatus(newPaid, order.TotalAmount)
		if err := s.orderRepo.UpdatePaymentInTx(ctx, tx, orderID, newPaid, newStatus); err != nil {
			return err
		}

		order.PaidAmount = newPaid
		order.PaymentStatus = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Оплата зачислена",
		zap.Uint64("orderId", orderID),
		zap.Float64("amount", data.Amount),
		zap.String("method", data.Method),
		zap.String("paymentStatus", order.PaymentStatus.String()),
	)

	s.bus.Publish(ctx, events.PaymentReceivedEvent{Order: order, Amount: data.Amount, Actor: actor})

	return order, nil
}
