package services

import (
	"context"
	"testing"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNumberGen struct{ number string }

func (s stubNumberGen) Generate(ctx context.Context, businessID uint64) (string, error) {
	return s.number, nil
}

func newOrderTestService(orderRepo *fakeOrderRepo, itemRepo *fakeItemRepo) OrderServiceInterface {
	storeRepo := &fakeStoreRepo{
		findByID: func(ctx context.Context, businessID, storeID uint64) (*entities.Store, error) {
			return &entities.Store{ID: storeID, BusinessID: businessID}, nil
		},
	}
	customerRepo := &fakeCustomerRepo{
		findByID: func(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error) {
			return &entities.Customer{ID: customerID, BusinessID: businessID}, nil
		},
	}
	return NewOrderService(
		orderRepo, itemRepo, &fakeHistoryRepo{}, storeRepo, customerRepo,
		stubNumberGen{number: "LDR-260830-AB12CD"},
		fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop(),
	)
}

func createOrderDTO() dto.CreateOrderDTO {
	return dto.CreateOrderDTO{
		StoreID:    2,
		CustomerID: 3,
		Items: []dto.CreateOrderItemDTO{
			{ItemName: "Пальто", ServiceName: "Химчистка", Quantity: 1, UnitPrice: 150},
			{ItemName: "Рубашка", ServiceName: "Стирка", Quantity: 3, UnitPrice: 50},
		},
	}
}

func TestCreateOrder_ComputesTotals(t *testing.T) {
	var created *entities.Order
	orderRepo := &fakeOrderRepo{
		createInTx: func(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error) {
			order.ID = 10
			created = order
			return 10, nil
		},
	}
	var batch []entities.OrderItem
	itemRepo := &fakeItemRepo{
		createBatchInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error {
			batch = items
			return nil
		},
	}
	svc := newOrderTestService(orderRepo, itemRepo)

	order, err := svc.Create(context.Background(), 1, staffActor(), createOrderDTO())
	require.NoError(t, err)

	// 1*150 + 3*50, клиентским итогам не верим.
	assert.Equal(t, 300.0, created.TotalAmount)
	assert.Equal(t, 0.0, created.PaidAmount)
	assert.Equal(t, constants.StatusPickup, created.Status)
	assert.Equal(t, constants.PaymentUnpaid, created.PaymentStatus)
	assert.Equal(t, "NORMAL", created.Priority)
	assert.Equal(t, "LDR-260830-AB12CD", order.OrderNumber)

	require.Len(t, batch, 2)
	assert.Equal(t, 150.0, batch[0].Subtotal)
	assert.Equal(t, 150.0, batch[1].Subtotal)
	assert.Equal(t, constants.ItemStatusPickup, batch[0].Status)
	assert.False(t, batch[0].SentToWorkshop)
}

func TestCreateOrder_UnknownStore(t *testing.T) {
	storeRepo := &fakeStoreRepo{
		findByID: func(ctx context.Context, businessID, storeID uint64) (*entities.Store, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	svc := NewOrderService(
		&fakeOrderRepo{}, &fakeItemRepo{}, &fakeHistoryRepo{}, storeRepo, &fakeCustomerRepo{},
		stubNumberGen{number: "LDR-260830-AB12CD"},
		fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop(),
	)

	_, err := svc.Create(context.Background(), 1, staffActor(), createOrderDTO())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddItems_RecalculatesTotal(t *testing.T) {
	var savedTotal float64
	orderRepo := &fakeOrderRepo{
		findByIDForUpdate: func(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusInProgress, TotalAmount: 300}, nil
		},
		updateTotalInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64, totalAmount float64, paymentStatus constants.PaymentStatus) error {
			savedTotal = totalAmount
			return nil
		},
		findByID: func(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusInProgress, TotalAmount: savedTotal}, nil
		},
	}
	itemRepo := &fakeItemRepo{
		createBatchInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error {
			return nil
		},
		sumSubtotalsInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error) {
			// Сумма пересчитывается из строк вещей, а не прибавляется.
			return 450, nil
		},
		findByOrderID: func(ctx context.Context, orderID uint64) ([]entities.OrderItem, error) {
			return []entities.OrderItem{}, nil
		},
	}
	svc := newOrderTestService(orderRepo, itemRepo)

	order, err := svc.AddItems(context.Background(), 1, 10, dto.AddOrderItemsDTO{
		Items: []dto.CreateOrderItemDTO{{ItemName: "Плед", ServiceName: "Стирка", Quantity: 1, UnitPrice: 150}},
	})
	require.NoError(t, err)
	assert.Equal(t, 450.0, savedTotal)
	assert.Equal(t, 450.0, order.TotalAmount)
}

func TestAddItems_RederivesPaymentStatus(t *testing.T) {
	var savedStatus constants.PaymentStatus
	orderRepo := &fakeOrderRepo{
		findByIDForUpdate: func(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
			// Полностью оплаченный заказ до добавления вещей.
			return &entities.Order{
				ID: orderID, BusinessID: businessID, Status: constants.StatusInProgress,
				TotalAmount: 300, PaidAmount: 300, PaymentStatus: constants.PaymentPaid,
			}, nil
		},
		updateTotalInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64, totalAmount float64, paymentStatus constants.PaymentStatus) error {
			savedStatus = paymentStatus
			return nil
		},
		findByID: func(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, TotalAmount: 450, PaidAmount: 300, PaymentStatus: savedStatus}, nil
		},
	}
	itemRepo := &fakeItemRepo{
		createBatchInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error {
			return nil
		},
		sumSubtotalsInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error) {
			return 450, nil
		},
		findByOrderID: func(ctx context.Context, orderID uint64) ([]entities.OrderItem, error) {
			return []entities.OrderItem{}, nil
		},
	}
	svc := newOrderTestService(orderRepo, itemRepo)

	order, err := svc.AddItems(context.Background(), 1, 10, dto.AddOrderItemsDTO{
		Items: []dto.CreateOrderItemDTO{{ItemName: "Плед", ServiceName: "Стирка", Quantity: 1, UnitPrice: 150}},
	})
	require.NoError(t, err)
	// Заказ перестал быть оплаченным полностью: 300 из 450.
	assert.Equal(t, constants.PaymentPartial, savedStatus)
	assert.Equal(t, constants.PaymentPartial, order.PaymentStatus)
}

func TestAddItems_TerminalOrder(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findByIDForUpdate: func(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusCompleted}, nil
		},
	}
	svc := newOrderTestService(orderRepo, &fakeItemRepo{})

	_, err := svc.AddItems(context.Background(), 1, 10, dto.AddOrderItemsDTO{
		Items: []dto.CreateOrderItemDTO{{ItemName: "Плед", ServiceName: "Стирка", Quantity: 1, UnitPrice: 150}},
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderTerminal)
}
