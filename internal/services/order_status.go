package services

import (
	"context"
	"time"

	"laundry-system/internal/entities"
	"laundry-system/internal/events"
	"laundry-system/internal/repositories"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TransitionParams — полное описание перехода заказа.
// DriverID != nil дополнительно требует совпадения привязанного водителя
// (действия из мобильного приложения).
type TransitionParams struct {
	BusinessID uint64
	OrderID    uint64
	Expected   constants.OrderStatus
	Target     constants.OrderStatus
	Actor      entities.Actor
	Notes      *string
	DriverID   *uint64
}

type OrderStatusServiceInterface interface {
	ApplyTransition(ctx context.Context, p TransitionParams) (*entities.Order, error)
	Cancel(ctx context.Context, businessID, orderID uint64, actor entities.Actor, notes *string) (*entities.Order, error)
}

// OrderStatusService — единственная точка смены статусов заказа.
// Граф допустимых переходов проверяется до записи, сама запись идет
// через CAS: конкурент, успевший раньше, оставит нам ноль строк.
type OrderStatusService struct {
	orderRepo   repositories.OrderRepositoryInterface
	historyRepo repositories.OrderHistoryRepositoryInterface
	txManager   repositories.TxManagerInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewOrderStatusService(
	orderRepo repositories.OrderRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderStatusServiceInterface {
	return &OrderStatusService{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		bus:         bus,
		logger:      logger,
	}
}

// ApplyTransition переводит заказ Expected -> Target.
// Переход и строка журнала фиксируются одной транзакцией; событие
// публикуется только после коммита.
func (s *OrderStatusService) ApplyTransition(ctx context.Context, p TransitionParams) (*entities.Order, error) {
	if !p.Expected.Valid() || !p.Target.Valid() {
		return nil, apperrors.NewInvalidInputError("неизвестный статус заказа")
	}
	if !p.Expected.CanTransitionTo(p.Target) {
		return nil, apperrors.ErrInvalidTransition
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ok, err := s.orderRepo.UpdateStatusCAS(ctx, tx, repositories.UpdateStatusCASParams{
			BusinessID: p.BusinessID,
			OrderID:    p.OrderID,
			Expected:   p.Expected,
			Target:     p.Target,
			DriverID:   p.DriverID,
			Now:        time.Now(),
		})
		if err != nil {
			return err
		}
		if !ok {
			// Заказ не существует, чужой, либо статус уже изменился.
			return apperrors.ErrNotFound
		}

		return s.historyRepo.CreateInTx(ctx, tx, &entities.OrderStatusHistory{
			OrderID:    p.OrderID,
			FromStatus: p.Expected,
			ToStatus:   p.Target,
			ActorKind:  p.Actor.Kind,
			ActorID:    p.Actor.ID,
			ActorName:  p.Actor.Name,
			Notes:      p.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, p.BusinessID, p.OrderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статус заказа изменен",
		zap.Uint64("orderId", p.OrderID),
		zap.String("from", p.Expected.String()),
		zap.String("to", p.Target.String()),
		zap.String("actorKind", string(p.Actor.Kind)),
	)

	s.bus.Publish(ctx, events.OrderStatusChangedEvent{
		Order:      order,
		FromStatus: p.Expected,
		ToStatus:   p.Target,
		Actor:      p.Actor,
	})

	return order, nil
}

// Cancel отменяет заказ из любого нефинального статуса.
// Текущий статус читается и подставляется как ожидаемый: проигранная
// гонка с другим переходом вернет ErrNotFound, а не затрет его.
func (s *OrderStatusService) Cancel(ctx context.Context, businessID, orderID uint64, actor entities.Actor, notes *string) (*entities.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, apperrors.ErrOrderTerminal
	}

	return s.ApplyTransition(ctx, TransitionParams{
		BusinessID: businessID,
		OrderID:    orderID,
		Expected:   order.Status,
		Target:     constants.StatusCancelled,
		Actor:      actor,
		Notes:      notes,
	})
}
