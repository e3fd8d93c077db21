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
	"laundry-system/pkg/types"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, businessID uint64, actor entities.Actor, data dto.CreateOrderDTO) (*entities.Order, error)
	GetByID(ctx context.Context, businessID, orderID uint64) (*entities.Order, error)
	GetHistory(ctx context.Context, businessID, orderID uint64) ([]entities.OrderStatusHistory, error)
	List(ctx context.Context, businessID uint64, filter types.Filter) ([]entities.Order, uint64, error)
	AddItems(ctx context.Context, businessID, orderID uint64, data dto.AddOrderItemsDTO) (*entities.Order, error)
}

type OrderService struct {
	orderRepo    repositories.OrderRepositoryInterface
	itemRepo     repositories.OrderItemRepositoryInterface
	historyRepo  repositories.OrderHistoryRepositoryInterface
	storeRepo    repositories.StoreRepositoryInterface
	customerRepo repositories.CustomerRepositoryInterface
	numberGen    OrderNumberGeneratorInterface
	txManager    repositories.TxManagerInterface
	bus          *eventbus.Bus
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	itemRepo repositories.OrderItemRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	storeRepo repositories.StoreRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	numberGen OrderNumberGeneratorInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		historyRepo:  historyRepo,
		storeRepo:    storeRepo,
		customerRepo: customerRepo,
		numberGen:    numberGen,
		txManager:    txManager,
		bus:          bus,
		logger:       logger,
	}
}

func buildItems(src []dto.CreateOrderItemDTO) ([]entities.OrderItem, float64) {
	items := make([]entities.OrderItem, 0, len(src))
	var total float64
	for _, it := range src {
		subtotal := float64(it.Quantity) * it.UnitPrice
		total += subtotal
		items = append(items, entities.OrderItem{
			ItemName:    it.ItemName,
			ServiceName: it.ServiceName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
			Status:      constants.ItemStatusPickup,
			Color:       it.Color,
			Brand:       it.Brand,
			Notes:       it.Notes,
		})
	}
	return items, total
}

// Create заводит заказ в статусе приемки вместе с вещами одной транзакцией.
// Сумма заказа всегда вычисляется из строк вещей, клиентским итогам не верим.
func (s *OrderService) Create(ctx context.Context, businessID uint64, actor entities.Actor, data dto.CreateOrderDTO) (*entities.Order, error) {
	if _, err := s.storeRepo.FindByID(ctx, businessID, data.StoreID); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByID(ctx, businessID, data.CustomerID); err != nil {
		return nil, err
	}

	number, err := s.numberGen.Generate(ctx, businessID)
	if err != nil {
		return nil, err
	}

	items, total := buildItems(data.Items)

	priority := data.Priority
	if priority == "" {
		priority = "NORMAL"
	}

	order := &entities.Order{
		BusinessID:    businessID,
		StoreID:       data.StoreID,
		CustomerID:    data.CustomerID,
		OrderNumber:   number,
		Status:        constants.StatusPickup,
		PaymentStatus: constants.PaymentUnpaid,
		TotalAmount:   total,
		PaidAmount:    0,
		Priority:      priority,
		Notes:         data.Notes,
		PickupDate:    data.PickupDate,
		DeliveryDate:  data.DeliveryDate,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.orderRepo.CreateInTx(ctx, tx, order); err != nil {
			return err
		}
		return s.itemRepo.CreateBatchInTx(ctx, tx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	s.logger.Info("Заказ создан",
		zap.Uint64("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Uint64("businessId", businessID),
		zap.Int("items", len(items)),
	)

	s.bus.Publish(ctx, events.OrderCreatedEvent{Order: order, Actor: actor})

	return order, nil
}

// GetByID возвращает заказ вместе с вещами.
func (s *OrderService) GetByID(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// GetHistory возвращает журнал переходов; принадлежность заказа
// бизнесу проверяется до чтения журнала.
func (s *OrderService) GetHistory(ctx context.Context, businessID, orderID uint64) ([]entities.OrderStatusHistory, error) {
	if _, err := s.orderRepo.FindByID(ctx, businessID, orderID); err != nil {
		return nil, err
	}
	return s.historyRepo.FindByOrderID(ctx, orderID)
}

func (s *OrderService) List(ctx context.Context, businessID uint64, filter types.Filter) ([]entities.Order, uint64, error) {
	return s.orderRepo.List(ctx, businessID, filter)
}

// AddItems дополняет нефинальный заказ новыми вещами и пересчитывает
// его сумму из строк в той же транзакции.
func (s *OrderService) AddItems(ctx context.Context, businessID, orderID uint64, data dto.AddOrderItemsDTO) (*entities.Order, error) {
	items, _ := buildItems(data.Items)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, businessID, orderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return apperrors.ErrOrderTerminal
		}

		if err := s.itemRepo.CreateBatchInTx(ctx, tx, orderID, items); err != nil {
			return err
		}

		total, err := s.itemRepo.SumSubtotalsInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		// Рост суммы может разжаловать PAID обратно в PARTIAL.
		newStatus := constants.DerivePaymentStatus(order.PaidAmount, total)
		return s.orderRepo.UpdateTotalInTx(ctx, tx, orderID, total, newStatus)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, businessID, orderID)
}
