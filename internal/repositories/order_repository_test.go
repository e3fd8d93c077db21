package repositories

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"laundry-system/internal/entities"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPool *pgxpool.Pool

// TestMain подключается к тестовой БД из TEST_DATABASE_URL, применяет схему
// и запускает тесты. Без переменной окружения интеграционные тесты пропускаются.
func TestMain(m *testing.M) {
	testDbUrl := os.Getenv("TEST_DATABASE_URL")
	if testDbUrl == "" {
		os.Exit(m.Run())
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), testDbUrl)
	if err != nil {
		log.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
	}
	defer testPool.Close()

	applySchema(testPool)

	os.Exit(m.Run())
}

// applySchema выполняет Up-секцию стартовой миграции в тестовой БД.
func applySchema(pool *pgxpool.Pool) {
	path, _ := filepath.Abs("../../migrations/00001_init.sql")
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Не удалось прочитать миграцию: %v", err)
	}
	schema := string(raw)
	if idx := strings.Index(schema, "-- +goose Down"); idx >= 0 {
		schema = schema[:idx]
	}
	if _, err := pool.Exec(context.Background(), schema); err != nil {
		log.Fatalf("Не удалось применить схему БД: %v", err)
	}
}

func requireTestDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан, интеграционный тест пропущен")
	}
}

// cleanupTables очищает таблицы для обеспечения изоляции тестов.
func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE TABLE notifications, order_status_history, order_items, orders,
		 notification_settings, users, drivers, customers, stores RESTART IDENTITY CASCADE;`)
	require.NoError(t, err, "Не удалось очистить таблицы")
}

// seedData создает филиал, клиента и водителя, необходимые для заказов.
func seedData(t *testing.T, pool *pgxpool.Pool) (storeID, customerID, driverID uint64) {
	t.Helper()
	err := pool.QueryRow(context.Background(),
		`INSERT INTO stores (business_id, name) VALUES (1, 'Центральный филиал') RETURNING id`).Scan(&storeID)
	require.NoError(t, err)

	err = pool.QueryRow(context.Background(),
		`INSERT INTO customers (business_id, name, phone) VALUES (1, 'Тестовый клиент', '+992900000001') RETURNING id`).Scan(&customerID)
	require.NoError(t, err)

	err = pool.QueryRow(context.Background(),
		`INSERT INTO drivers (business_id, name, phone) VALUES (1, 'Тестовый водитель', '+992900000002') RETURNING id`).Scan(&driverID)
	require.NoError(t, err)

	return
}

func createTestOrder(t *testing.T, repo OrderRepositoryInterface, storeID, customerID uint64, number string) uint64 {
	t.Helper()
	order := &entities.Order{
		BusinessID:    1,
		StoreID:       storeID,
		CustomerID:    customerID,
		OrderNumber:   number,
		Status:        constants.StatusPickup,
		PaymentStatus: constants.PaymentUnpaid,
		TotalAmount:   500,
		Priority:      "NORMAL",
	}

	tx, err := testPool.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())

	id, err := repo.CreateInTx(context.Background(), tx, order)
	require.NoError(t, err, "Подготовка теста: создание заказа не должно вызывать ошибок")
	require.NoError(t, tx.Commit(context.Background()))
	return id
}

func inTx(t *testing.T, fn func(tx pgx.Tx) error) error {
	t.Helper()
	tx, err := testPool.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(context.Background())
}

func TestOrderRepository_Integration_CreateAndFind(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	storeID, customerID, _ := seedData(t, testPool)
	repo := NewOrderRepository(testPool, zap.NewNop())

	newID := createTestOrder(t, repo, storeID, customerID, "LDR-260830-AB12CD")
	require.True(t, newID > 0)

	t.Run("success find", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), 1, newID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "LDR-260830-AB12CD", found.OrderNumber)
		assert.Equal(t, constants.StatusPickup, found.Status)
		assert.Equal(t, constants.PaymentUnpaid, found.PaymentStatus)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 1, 99999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("foreign business", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 2, newID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, "Заказ чужого бизнеса не должен находиться")
	})

	t.Run("number exists", func(t *testing.T) {
		exists, err := repo.OrderNumberExists(context.Background(), 1, "LDR-260830-AB12CD")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.OrderNumberExists(context.Background(), 2, "LDR-260830-AB12CD")
		require.NoError(t, err)
		assert.False(t, exists, "Уникальность номера действует в пределах бизнеса")
	})
}

func TestOrderRepository_Integration_UpdateStatusCAS(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	storeID, customerID, _ := seedData(t, testPool)
	repo := NewOrderRepository(testPool, zap.NewNop())

	newID := createTestOrder(t, repo, storeID, customerID, "LDR-260830-000001")

	t.Run("matching expected status", func(t *testing.T) {
		err := inTx(t, func(tx pgx.Tx) error {
			ok, err := repo.UpdateStatusCAS(context.Background(), tx, UpdateStatusCASParams{
				BusinessID: 1,
				OrderID:    newID,
				Expected:   constants.StatusPickup,
				Target:     constants.StatusInProgress,
				Now:        time.Now(),
			})
			require.NoError(t, err)
			assert.True(t, ok)
			return nil
		})
		require.NoError(t, err)

		updated, err := repo.FindByID(context.Background(), 1, newID)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusInProgress, updated.Status)
		assert.NotNil(t, updated.PickedUpAt, "Переход в IN_PROGRESS должен проставить picked_up_at")
	})

	t.Run("stale expected status", func(t *testing.T) {
		err := inTx(t, func(tx pgx.Tx) error {
			ok, err := repo.UpdateStatusCAS(context.Background(), tx, UpdateStatusCASParams{
				BusinessID: 1,
				OrderID:    newID,
				Expected:   constants.StatusPickup,
				Target:     constants.StatusInProgress,
				Now:        time.Now(),
			})
			require.NoError(t, err)
			assert.False(t, ok, "Проигранная гонка должна вернуть false без ошибки")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("driver guard mismatch", func(t *testing.T) {
		err := inTx(t, func(tx pgx.Tx) error {
			ok, err := repo.UpdateStatusCAS(context.Background(), tx, UpdateStatusCASParams{
				BusinessID: 1,
				OrderID:    newID,
				Expected:   constants.StatusInProgress,
				Target:     constants.StatusAtWorkshop,
				DriverID:   utils.Uint64Ptr(777),
				Now:        time.Now(),
			})
			require.NoError(t, err)
			assert.False(t, ok, "Несовпадение водителя не должно менять заказ")
			return nil
		})
		require.NoError(t, err)
	})
}

func TestOrderRepository_Integration_AssignDriver(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	storeID, customerID, driverID := seedData(t, testPool)
	repo := NewOrderRepository(testPool, zap.NewNop())

	newID := createTestOrder(t, repo, storeID, customerID, "LDR-260830-000002")

	ok, err := repo.AssignDriver(context.Background(), 1, newID, &driverID)
	require.NoError(t, err)
	assert.True(t, ok)

	assigned, err := repo.FindByID(context.Background(), 1, newID)
	require.NoError(t, err)
	require.NotNil(t, assigned.DriverID)
	assert.Equal(t, driverID, *assigned.DriverID)
	assert.NotNil(t, assigned.AssignedAt)

	orders, err := repo.ListByDriver(context.Background(), 1, driverID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	ok, err = repo.AssignDriver(context.Background(), 1, newID, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	unassigned, err := repo.FindByID(context.Background(), 1, newID)
	require.NoError(t, err)
	assert.Nil(t, unassigned.DriverID)
	assert.Nil(t, unassigned.AssignedAt, "Снятие водителя должно сбрасывать assigned_at")
}

func TestOrderRepository_Integration_GetStats(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	storeID, customerID, _ := seedData(t, testPool)
	repo := NewOrderRepository(testPool, zap.NewNop())

	firstID := createTestOrder(t, repo, storeID, customerID, "LDR-260830-000003")
	createTestOrder(t, repo, storeID, customerID, "LDR-260830-000004")

	err := inTx(t, func(tx pgx.Tx) error {
		return repo.UpdatePaymentInTx(context.Background(), tx, firstID, 200, constants.PaymentPartial)
	})
	require.NoError(t, err)

	stats, err := repo.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.TotalOrders)
	assert.Equal(t, uint64(2), stats.OrdersByStatus[string(constants.StatusPickup)])
	assert.Equal(t, float64(200), stats.Revenue)
	assert.Equal(t, float64(800), stats.OutstandingDebt)
}
