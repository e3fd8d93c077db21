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

type WorkshopServiceInterface interface {
	SendToWorkshop(ctx context.Context, businessID, orderID uint64, actor entities.Actor, data dto.SendToWorkshopDTO) (int64, error)
	MarkReturned(ctx context.Context, businessID, itemID uint64, actor entities.Actor, data dto.ReturnItemDTO) error
	ReturnToStore(ctx context.Context, businessID, itemID uint64, actor entities.Actor, data dto.ReturnItemDTO) error
	ListItems(ctx context.Context, businessID uint64, tab repositories.WorkshopTab) ([]repositories.WorkshopItem, error)
}

// WorkshopService управляет маршрутизацией вещей через цех.
// Статус вещи живет отдельно от статуса заказа: возврат последней вещи
// НЕ двигает заказ — решение о его готовности принимает сотрудник.
type WorkshopService struct {
	orderRepo repositories.OrderRepositoryInterface
	itemRepo  repositories.OrderItemRepositoryInterface
	txManager repositories.TxManagerInterface
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewWorkshopService(
	orderRepo repositories.OrderRepositoryInterface,
	itemRepo repositories.OrderItemRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) WorkshopServiceInterface {
	return &WorkshopService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		txManager: txManager,
		bus:       bus,
		logger:    logger,
	}
}

// SendToWorkshop помечает перечисленные вещи заказа как отправленные в цех.
// Вещи, не принадлежащие заказу, молча пропускаются; возвращается число
// реально отправленных.
func (s *WorkshopService) SendToWorkshop(ctx context.Context, businessID, orderID uint64, actor entities.Actor, data dto.SendToWorkshopDTO) (int64, error) {
	var sent int64
	var order *entities.Order

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, businessID, orderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return apperrors.ErrOrderTerminal
		}

		sent, err = s.itemRepo.SendToWorkshopInTx(ctx, tx, orderID, data.ItemIDs)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Вещи отправлены в цех",
		zap.Uint64("orderId", orderID),
		zap.Int64("sent", sent),
		zap.Int("requested", len(data.ItemIDs)),
	)

	if sent > 0 {
		s.bus.Publish(ctx, events.WorkshopItemsSentEvent{Order: order, ItemCount: sent, Actor: actor})
	}
	return sent, nil
}

// MarkReturned принимает вещь из цеха обратно (AT_WORKSHOP -> WORKSHOP_RETURNED).
func (s *WorkshopService) MarkReturned(ctx context.Context, businessID, itemID uint64, actor entities.Actor, data dto.ReturnItemDTO) error {
	return s.returnFromWorkshop(ctx, businessID, itemID, constants.ItemStatusWorkshopReturned, actor, data)
}

// ReturnToStore сразу помечает вещь готовой к выдаче (AT_WORKSHOP -> READY).
func (s *WorkshopService) ReturnToStore(ctx context.Context, businessID, itemID uint64, actor entities.Actor, data dto.ReturnItemDTO) error {
	return s.returnFromWorkshop(ctx, businessID, itemID, constants.ItemStatusReady, actor, data)
}

func (s *WorkshopService) returnFromWorkshop(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, actor entities.Actor, data dto.ReturnItemDTO) error {
	ok, err := s.itemRepo.UpdateStatusFromWorkshop(ctx, businessID, itemID, target, data.Notes)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrItemNotAtWorkshop
	}

	s.logger.Info("Вещь возвращена из цеха",
		zap.Uint64("itemId", itemID),
		zap.String("to", target.String()),
	)

	s.bus.Publish(ctx, events.WorkshopItemReturnedEvent{
		BusinessID: businessID,
		ItemID:     itemID,
		ToStatus:   target,
		Actor:      actor,
	})
	return nil
}

func (s *WorkshopService) ListItems(ctx context.Context, businessID uint64, tab repositories.WorkshopTab) ([]repositories.WorkshopItem, error) {
	return s.itemRepo.ListWorkshop(ctx, businessID, tab)
}
