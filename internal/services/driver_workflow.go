package services

import (
	"context"
	"errors"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/internal/events"
	"laundry-system/internal/repositories"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/eventbus"

	"go.uber.org/zap"
)

type DriverWorkflowServiceInterface interface {
	AssignDriver(ctx context.Context, businessID, orderID uint64, actor entities.Actor, data dto.AssignDriverDTO) (*entities.Order, error)
	Pickup(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error)
	StartDelivery(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error)
	Deliver(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error)
	MyOrders(ctx context.Context, businessID, driverID uint64) ([]entities.Order, error)
}

// DriverWorkflowService — действия диспетчера и водителя над заказом.
// Каждый переход водителя дополнительно защищен проверкой driver_id в CAS:
// заказ, переназначенный другому водителю, для прежнего "исчезает".
type DriverWorkflowService struct {
	orderRepo     repositories.OrderRepositoryInterface
	driverRepo    repositories.DriverRepositoryInterface
	statusService OrderStatusServiceInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewDriverWorkflowService(
	orderRepo repositories.OrderRepositoryInterface,
	driverRepo repositories.DriverRepositoryInterface,
	statusService OrderStatusServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) DriverWorkflowServiceInterface {
	return &DriverWorkflowService{
		orderRepo:     orderRepo,
		driverRepo:    driverRepo,
		statusService: statusService,
		bus:           bus,
		logger:        logger,
	}
}

// AssignDriver назначает (или снимает при nil) водителя на заказ.
// Назначить можно только активного водителя своего бизнеса; статус
// заказа назначение не меняет.
func (s *DriverWorkflowService) AssignDriver(ctx context.Context, businessID, orderID uint64, actor entities.Actor, data dto.AssignDriverDTO) (*entities.Order, error) {
	if data.DriverID != nil {
		if _, err := s.driverRepo.FindActive(ctx, businessID, *data.DriverID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrDriverNotAvailable
			}
			return nil, err
		}
	}

	ok, err := s.orderRepo.AssignDriver(ctx, businessID, orderID, data.DriverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	order, err := s.orderRepo.FindByID(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Водитель назначен на заказ",
		zap.Uint64("orderId", orderID),
		zap.Any("driverId", data.DriverID),
	)

	s.bus.Publish(ctx, events.DriverAssignedEvent{Order: order, DriverID: data.DriverID, Actor: actor})

	return order, nil
}

// Pickup — водитель забрал заказ у клиента (PICKUP -> IN_PROGRESS).
func (s *DriverWorkflowService) Pickup(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error) {
	return s.statusService.ApplyTransition(ctx, TransitionParams{
		BusinessID: businessID,
		OrderID:    orderID,
		Expected:   constants.StatusPickup,
		Target:     constants.StatusInProgress,
		Actor:      actor,
		DriverID:   &driverID,
	})
}

// StartDelivery — водитель повез готовый заказ (READY -> OUT_FOR_DELIVERY).
func (s *DriverWorkflowService) StartDelivery(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error) {
	return s.statusService.ApplyTransition(ctx, TransitionParams{
		BusinessID: businessID,
		OrderID:    orderID,
		Expected:   constants.StatusReady,
		Target:     constants.StatusOutForDelivery,
		Actor:      actor,
		DriverID:   &driverID,
	})
}

// Deliver — заказ вручен клиенту. Допустим как из OUT_FOR_DELIVERY,
// так и напрямую из READY (выдача на месте без рейса).
func (s *DriverWorkflowService) Deliver(ctx context.Context, businessID, orderID, driverID uint64, actor entities.Actor) (*entities.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.StatusReady && order.Status != constants.StatusOutForDelivery {
		return nil, apperrors.ErrInvalidTransition
	}

	return s.statusService.ApplyTransition(ctx, TransitionParams{
		BusinessID: businessID,
		OrderID:    orderID,
		Expected:   order.Status,
		Target:     constants.StatusCompleted,
		Actor:      actor,
		DriverID:   &driverID,
	})
}

// MyOrders — активные заказы водителя для мобильного приложения.
func (s *DriverWorkflowService) MyOrders(ctx context.Context, businessID, driverID uint64) ([]entities.Order, error) {
	return s.orderRepo.ListByDriver(ctx, businessID, driverID)
}
