package services

import (
	"context"
	"errors"
	"time"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/internal/repositories"
	"laundry-system/pkg/constants"
	"laundry-system/pkg/types"

	"github.com/jackc/pgx/v5"
)

// Заглушки репозиториев для юнит-тестов сервисов: каждый метод
// перекрывается функцией-полем, неожиданный вызов роняет тест паникой.

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeOrderRepo struct {
	createInTx            func(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error)
	orderNumberExists     func(ctx context.Context, businessID uint64, number string) (bool, error)
	findByID              func(ctx context.Context, businessID, orderID uint64) (*entities.Order, error)
	findByIDForUpdate     func(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error)
	list                  func(ctx context.Context, businessID uint64, filter types.Filter) ([]entities.Order, uint64, error)
	listByDriver          func(ctx context.Context, businessID, driverID uint64) ([]entities.Order, error)
	updateStatusCAS       func(ctx context.Context, tx pgx.Tx, p repositories.UpdateStatusCASParams) (bool, error)
	assignDriver          func(ctx context.Context, businessID, orderID uint64, driverID *uint64) (bool, error)
	updatePaymentInTx     func(ctx context.Context, tx pgx.Tx, orderID uint64, paidAmount float64, status constants.PaymentStatus) error
	updateTotalInTx       func(ctx context.Context, tx pgx.Tx, orderID uint64, totalAmount float64, paymentStatus constants.PaymentStatus) error
	listUnassignedForDate func(ctx context.Context, date time.Time) ([]entities.Order, error)
	getStats              func(ctx context.Context, businessID uint64) (*repositories.OrderStats, error)
	listForReport         func(ctx context.Context, businessID uint64, from, to time.Time) ([]repositories.OrderReportRow, error)
}

func (f *fakeOrderRepo) CreateInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error) {
	return f.createInTx(ctx, tx, order)
}
func (f *fakeOrderRepo) OrderNumberExists(ctx context.Context, businessID uint64, number string) (bool, error) {
	return f.orderNumberExists(ctx, businessID, number)
}
func (f *fakeOrderRepo) FindByID(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
	return f.findByID(ctx, businessID, orderID)
}
func (f *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
	return f.findByIDForUpdate(ctx, tx, businessID, orderID)
}
func (f *fakeOrderRepo) List(ctx context.Context, businessID uint64, filter types.Filter) ([]entities.Order, uint64, error) {
	return f.list(ctx, businessID, filter)
}
func (f *fakeOrderRepo) ListByDriver(ctx context.Context, businessID, driverID uint64) ([]entities.Order, error) {
	return f.listByDriver(ctx, businessID, driverID)
}
func (f *fakeOrderRepo) UpdateStatusCAS(ctx context.Context, tx pgx.Tx, p repositories.UpdateStatusCASParams) (bool, error) {
	return f.updateStatusCAS(ctx, tx, p)
}
func (f *fakeOrderRepo) AssignDriver(ctx context.Context, businessID, orderID uint64, driverID *uint64) (bool, error) {
	return f.assignDriver(ctx, businessID, orderID, driverID)
}
func (f *fakeOrderRepo) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID uint64, paidAmount float64, status constants.PaymentStatus) error {
	return f.updatePaymentInTx(ctx, tx, orderID, paidAmount, status)
}
func (f *fakeOrderRepo) UpdateTotalInTx(ctx context.Context, tx pgx.Tx, orderID uint64, totalAmount float64, paymentStatus constants.PaymentStatus) error {
	return f.updateTotalInTx(ctx, tx, orderID, totalAmount, paymentStatus)
}
func (f *fakeOrderRepo) ListUnassignedForDate(ctx context.Context, date time.Time) ([]entities.Order, error) {
	return f.listUnassignedForDate(ctx, date)
}
func (f *fakeOrderRepo) GetStats(ctx context.Context, businessID uint64) (*repositories.OrderStats, error) {
	return f.getStats(ctx, businessID)
}
func (f *fakeOrderRepo) ListForReport(ctx context.Context, businessID uint64, from, to time.Time) ([]repositories.OrderReportRow, error) {
	return f.listForReport(ctx, businessID, from, to)
}

type fakeItemRepo struct {
	createBatchInTx          func(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error
	findByOrderID            func(ctx context.Context, orderID uint64) ([]entities.OrderItem, error)
	sumSubtotalsInTx         func(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error)
	sendToWorkshopInTx       func(ctx context.Context, tx pgx.Tx, orderID uint64, itemIDs []uint64) (int64, error)
	updateStatusFromWorkshop func(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error)
	listWorkshop             func(ctx context.Context, businessID uint64, tab repositories.WorkshopTab) ([]repositories.WorkshopItem, error)
}

func (f *fakeItemRepo) CreateBatchInTx(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error {
	return f.createBatchInTx(ctx, tx, orderID, items)
}
func (f *fakeItemRepo) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderItem, error) {
	return f.findByOrderID(ctx, orderID)
}
func (f *fakeItemRepo) SumSubtotalsInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error) {
	return f.sumSubtotalsInTx(ctx, tx, orderID)
}
func (f *fakeItemRepo) SendToWorkshopInTx(ctx context.Context, tx pgx.Tx, orderID uint64, itemIDs []uint64) (int64, error) {
	return f.sendToWorkshopInTx(ctx, tx, orderID, itemIDs)
}
func (f *fakeItemRepo) UpdateStatusFromWorkshop(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error) {
	return f.updateStatusFromWorkshop(ctx, businessID, itemID, target, notes)
}
func (f *fakeItemRepo) ListWorkshop(ctx context.Context, businessID uint64, tab repositories.WorkshopTab) ([]repositories.WorkshopItem, error) {
	return f.listWorkshop(ctx, businessID, tab)
}

type fakeHistoryRepo struct {
	created []entities.OrderStatusHistory
	fail    error
}

func (f *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.OrderStatusHistory) error {
	if f.fail != nil {
		return f.fail
	}
	f.created = append(f.created, *h)
	return nil
}

func (f *fakeHistoryRepo) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error) {
	return f.created, nil
}

type fakeDriverRepo struct {
	findActive func(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error)
	findByID   func(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error)
}

func (f *fakeDriverRepo) Create(ctx context.Context, businessID uint64, data dto.CreateDriverDTO) (uint64, error) {
	panic("неожиданный вызов Create")
}
func (f *fakeDriverRepo) FindByID(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error) {
	return f.findByID(ctx, businessID, driverID)
}
func (f *fakeDriverRepo) FindActive(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error) {
	return f.findActive(ctx, businessID, driverID)
}
func (f *fakeDriverRepo) List(ctx context.Context, businessID uint64) ([]entities.Driver, error) {
	panic("неожиданный вызов List")
}
func (f *fakeDriverRepo) Update(ctx context.Context, businessID, driverID uint64, data dto.UpdateDriverDTO) error {
	panic("неожиданный вызов Update")
}

type fakeStoreRepo struct {
	findByID func(ctx context.Context, businessID, storeID uint64) (*entities.Store, error)
}

func (f *fakeStoreRepo) Create(ctx context.Context, businessID uint64, data dto.CreateStoreDTO) (uint64, error) {
	panic("неожиданный вызов Create")
}
func (f *fakeStoreRepo) FindByID(ctx context.Context, businessID, storeID uint64) (*entities.Store, error) {
	return f.findByID(ctx, businessID, storeID)
}
func (f *fakeStoreRepo) List(ctx context.Context, businessID uint64) ([]entities.Store, error) {
	panic("неожиданный вызов List")
}

type fakeCustomerRepo struct {
	findByID func(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error)
}

func (f *fakeCustomerRepo) Create(ctx context.Context, businessID uint64, data dto.CreateCustomerDTO) (uint64, error) {
	panic("неожиданный вызов Create")
}
func (f *fakeCustomerRepo) FindByID(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error) {
	return f.findByID(ctx, businessID, customerID)
}
func (f *fakeCustomerRepo) List(ctx context.Context, businessID uint64, search string) ([]entities.Customer, error) {
	panic("неожиданный вызов List")
}

type fakeNotificationRepo struct {
	created []entities.Notification
	fail    error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entities.Notification) error {
	if f.fail != nil {
		return f.fail
	}
	f.created = append(f.created, *n)
	return nil
}
func (f *fakeNotificationRepo) ListForUser(ctx context.Context, businessID, userID uint64, onlyUnread bool) ([]entities.Notification, error) {
	return f.created, nil
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, businessID, userID, notificationID uint64) error {
	return nil
}
func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, businessID, userID uint64) error {
	return nil
}
func (f *fakeNotificationRepo) Delete(ctx context.Context, businessID, userID, notificationID uint64) error {
	return nil
}

type fakeUserRepo struct {
	settings *entities.NotificationSettings
}

func (f *fakeUserRepo) GetNotificationSettings(ctx context.Context, userID uint64) (*entities.NotificationSettings, error) {
	if f.settings != nil {
		return f.settings, nil
	}
	return &entities.NotificationSettings{
		UserID:              userID,
		NotifyNewOrders:     true,
		NotifyStatusUpdates: true,
		NotifyPayments:      true,
		NotifyLowStock:      true,
	}, nil
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		f.data[key] = v
	case []byte:
		f.data[key] = string(v)
	}
	return nil
}

var errCacheMiss = errors.New("ключ не найден в кеше")

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", errCacheMiss
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
