package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry-system/internal/entities"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// UpdateStatusCASParams — параметры CAS-перехода заказа.
// WHERE включает ожидаемый статус (и, для действий водителя, ожидаемого
// водителя): проигравший конкурентный запрос увидит ноль затронутых строк.
type UpdateStatusCASParams struct {
	BusinessID uint64
	OrderID    uint64
	Expected   constants.OrderStatus
	Target     constants.OrderStatus
	// DriverID != nil требует совпадения привязанного водителя.
	DriverID *uint64
	Now      time.Time
}

type OrderStats struct {
	TotalOrders     uint64            `json:"total_orders"`
	OrdersByStatus  map[string]uint64 `json:"orders_by_status"`
	Revenue         float64           `json:"revenue"`
	OutstandingDebt float64           `json:"outstanding_debt"`
}

// OrderReportRow — строка выгрузки заказов за период.
type OrderReportRow struct {
	OrderNumber   string
	CustomerName  string
	StoreName     string
	Status        constants.OrderStatus
	PaymentStatus constants.PaymentStatus
	TotalAmount   float64
	PaidAmount    float64
	CreatedAt     time.Time
	CompletedDate *time.Time
}

type OrderRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error)
	OrderNumberExists(ctx context.Context, businessID uint64, number string) (bool, error)
	FindByID(ctx context.Context, businessID, orderID uint64) (*entities.Order, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error)
	List(ctx context.Context, businessID uint64, filter types.Filter) ([]entities.Order, uint64, error)
	ListByDriver(ctx context.Context, businessID, driverID uint64) ([]entities.Order, error)
	UpdateStatusCAS(ctx context.Context, tx pgx.Tx, p UpdateStatusCASParams) (bool, error)
	AssignDriver(ctx context.Context, businessID, orderID uint64, driverID *uint64) (bool, error)
	UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID uint64, paidAmount float64, status constants.PaymentStatus) error
	UpdateTotalInTx(ctx context.Context, tx pgx.Tx, orderID uint64, totalAmount float64, paymentStatus constants.PaymentStatus) error
	ListUnassignedForDate(ctx context.Context, date time.Time) ([]entities.Order, error)
	GetStats(ctx context.Context, businessID uint64) (*OrderStats, error)
	ListForReport(ctx context.Context, businessID uint64, from, to time.Time) ([]OrderReportRow, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

const orderColumns = `
	id, business_id, store_id, customer_id, driver_id, order_number,
	status, payment_status, total_amount, paid_amount, priority, notes,
	pickup_date, delivery_date, assigned_at, picked_up_at, delivered_at,
	completed_date, created_at, updated_at`

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	err := row.Scan(
		&o.ID, &o.BusinessID, &o.StoreID, &o.CustomerID, &o.DriverID, &o.OrderNumber,
		&o.Status, &o.PaymentStatus, &o.TotalAmount, &o.PaidAmount, &o.Priority, &o.Notes,
		&o.PickupDate, &o.DeliveryDate, &o.AssignedAt, &o.PickedUpAt, &o.DeliveredAt,
		&o.CompletedDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) CreateInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error) {
	query := `
		INSERT INTO orders (
			business_id, store_id, customer_id, order_number, status,
			payment_status, total_amount, paid_amount, priority, notes,
			pickup_date, delivery_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		order.BusinessID, order.StoreID, order.CustomerID, order.OrderNumber, order.Status,
		order.PaymentStatus, order.TotalAmount, order.PaidAmount, order.Priority, order.Notes,
		order.PickupDate, order.DeliveryDate,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания заказа: %w", err)
	}
	return order.ID, nil
}

func (r *OrderRepository) OrderNumberExists(ctx context.Context, businessID uint64, number string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE business_id = $1 AND order_number = $2)`,
		businessID, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки номера заказа: %w", err)
	}
	return exists, nil
}

// findOne выполняет точечную выборку заказа на пуле или внутри транзакции.
func (r *OrderRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*entities.Order, error) {
	return scanOrder(q.QueryRow(ctx, query, args...))
}

// queryOrders выполняет выборку списка заказов и сканирует строки.
func (r *OrderRepository) queryOrders(ctx context.Context, q querier, query string, args ...any) ([]entities.Order, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) FindByID(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1 AND business_id = $2`
	return r.findOne(ctx, r.storage, query, orderID, businessID)
}

// FindByIDForUpdate читает заказ с блокировкой строки — используется
// при пересчете оплат и сумм внутри транзакции.
func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1 AND business_id = $2 FOR UPDATE`
	return r.findOne(ctx, tx, query, orderID, businessID)
}

var orderFilterColumns = map[string]string{
	"status":         "status",
	"payment_status": "payment_status",
	"store_id":       "store_id",
	"customer_id":    "customer_id",
	"driver_id":      "driver_id",
	"priority":       "priority",
	"created_at":     "created_at",
	"pickup_date":    "pickup_date",
}

func (r *OrderRepository) List(ctx context.Context, businessID uint64, filter types.Filter) ([]entities.Order, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From("orders").Where(sq.Eq{"business_id": businessID})
	listBuilder := psql.Select(
		"id", "business_id", "store_id", "customer_id", "driver_id", "order_number",
		"status", "payment_status", "total_amount", "paid_amount", "priority", "notes",
		"pickup_date", "delivery_date", "assigned_at", "picked_up_at", "delivered_at",
		"completed_date", "created_at", "updated_at",
	).From("orders").Where(sq.Eq{"business_id": businessID})

	for jsonField, val := range filter.Filter {
		dbCol, ok := orderFilterColumns[jsonField]
		if !ok {
			continue
		}
		countBuilder = countBuilder.Where(sq.Eq{dbCol: val})
		listBuilder = listBuilder.Where(sq.Eq{dbCol: val})
	}

	if filter.Search != "" {
		search := sq.ILike{"order_number": "%" + filter.Search + "%"}
		countBuilder = countBuilder.Where(search)
		listBuilder = listBuilder.Where(search)
	}

	ordered := false
	for jsonField, dir := range filter.Sort {
		dbCol, ok := orderFilterColumns[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if dir == "desc" {
			sqlDir = "DESC"
		}
		listBuilder = listBuilder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		ordered = true
	}
	if !ordered {
		listBuilder = listBuilder.OrderBy("created_at DESC")
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			listBuilder = listBuilder.Limit(uint64(filter.Limit))
		}
		if filter.Offset >= 0 {
			listBuilder = listBuilder.Offset(uint64(filter.Offset))
		}
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса подсчета: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заказов: %w", err)
	}

	listQuery, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса списка: %w", err)
	}
	orders, err := r.queryOrders(ctx, r.storage, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	return orders, total, nil
}

func (r *OrderRepository) ListByDriver(ctx context.Context, businessID, driverID uint64) ([]entities.Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders
		WHERE business_id = $1 AND driver_id = $2
		  AND status NOT IN ('COMPLETED', 'CANCELLED')
		ORDER BY pickup_date NULLS LAST, created_at`

	orders, err := r.queryOrders(ctx, r.storage, query, businessID, driverID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заказов водителя: %w", err)
	}
	return orders, nil
}

// UpdateStatusCAS атомарно переводит заказ в новый статус.
// Возвращает false, если строка не найдена или персистентное состояние
// не совпало с ожидаемым (проигранная гонка).
func (r *OrderRepository) UpdateStatusCAS(ctx context.Context, tx pgx.Tx, p UpdateStatusCASParams) (bool, error) {
	set := "status = $1, updated_at = $2"
	args := []interface{}{p.Target, p.Now}

	// Сопутствующие отметки времени для конкретных переходов.
	switch p.Target {
	case constants.StatusInProgress:
		set += ", picked_up_at = $3"
		args = append(args, p.Now)
	case constants.StatusCompleted:
		set += ", delivered_at = $3, completed_date = $4"
		args = append(args, p.Now, p.Now)
	}

	where := fmt.Sprintf("id = $%d AND business_id = $%d AND status = $%d",
		len(args)+1, len(args)+2, len(args)+3)
	args = append(args, p.OrderID, p.BusinessID, p.Expected)

	if p.DriverID != nil {
		where += fmt.Sprintf(" AND driver_id = $%d", len(args)+1)
		args = append(args, *p.DriverID)
	}

	tag, err := tx.Exec(ctx, fmt.Sprintf("UPDATE orders SET %s WHERE %s", set, where), args...)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления статуса заказа: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// AssignDriver связывает (или отвязывает при driverID == nil) водителя.
// Статус заказа не меняется; финальные заказы не трогаются.
func (r *OrderRepository) AssignDriver(ctx context.Context, businessID, orderID uint64, driverID *uint64) (bool, error) {
	query := `
		UPDATE orders
		SET driver_id = $1,
		    assigned_at = CASE WHEN $1::bigint IS NULL THEN NULL ELSE NOW() END,
		    updated_at = NOW()
		WHERE id = $2 AND business_id = $3 AND status NOT IN ('COMPLETED', 'CANCELLED')`

	tag, err := r.storage.Exec(ctx, query, driverID, orderID, businessID)
	if err != nil {
		return false, fmt.Errorf("ошибка назначения водителя: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID uint64, paidAmount float64, status constants.PaymentStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET paid_amount = $1, payment_status = $2, updated_at = NOW() WHERE id = $3`,
		paidAmount, status, orderID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления оплаты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateTotalInTx сохраняет новую сумму заказа вместе с заново выведенным
// статусом оплаты: изменение суммы всегда влечет пересмотр пары (оплачено, итого).
func (r *OrderRepository) UpdateTotalInTx(ctx context.Context, tx pgx.Tx, orderID uint64, totalAmount float64, paymentStatus constants.PaymentStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET total_amount = $1, payment_status = $2, updated_at = NOW() WHERE id = $3`,
		totalAmount, paymentStatus, orderID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления суммы заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListUnassignedForDate — заказы в приемке без водителя с окном забора на дату.
// Используется фоновым напоминанием.
func (r *OrderRepository) ListUnassignedForDate(ctx context.Context, date time.Time) ([]entities.Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders
		WHERE status = 'PICKUP' AND driver_id IS NULL AND pickup_date::date = $1::date
		ORDER BY business_id, pickup_date`

	orders, err := r.queryOrders(ctx, r.storage, query, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки заказов для напоминания: %w", err)
	}
	return orders, nil
}

// ListForReport — заказы за период с именами клиента и филиала
// для выгрузки в Excel.
func (r *OrderRepository) ListForReport(ctx context.Context, businessID uint64, from, to time.Time) ([]OrderReportRow, error) {
	query := `
		SELECT o.order_number, c.name, s.name, o.status, o.payment_status,
		       o.total_amount, o.paid_amount, o.created_at, o.completed_date
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN stores s ON s.id = o.store_id
		WHERE o.business_id = $1 AND o.created_at >= $2 AND o.created_at < $3
		ORDER BY o.created_at`

	rows, err := r.storage.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки заказов для отчета: %w", err)
	}
	defer rows.Close()

	report := make([]OrderReportRow, 0)
	for rows.Next() {
		var row OrderReportRow
		if err := rows.Scan(
			&row.OrderNumber, &row.CustomerName, &row.StoreName, &row.Status, &row.PaymentStatus,
			&row.TotalAmount, &row.PaidAmount, &row.CreatedAt, &row.CompletedDate,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчета: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *OrderRepository) GetStats(ctx context.Context, businessID uint64) (*OrderStats, error) {
	stats := &OrderStats{OrdersByStatus: make(map[string]uint64)}

	rows, err := r.storage.Query(ctx,
		`SELECT status, COUNT(*) FROM orders WHERE business_id = $1 GROUP BY status`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета заказов по статусам: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count uint64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.storage.QueryRow(ctx,
		`SELECT COALESCE(SUM(paid_amount), 0),
		        COALESCE(SUM(total_amount - paid_amount), 0)
		 FROM orders WHERE business_id = $1 AND status != 'CANCELLED'`,
		businessID,
	).Scan(&stats.Revenue, &stats.OutstandingDebt)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета выручки: %w", err)
	}

	return stats, nil
}
