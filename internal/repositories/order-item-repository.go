package repositories

import (
	"context"
	"errors"
	"fmt"

	"laundry-system/internal/entities"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkshopTab — вкладки цехового экрана; производное представление,
// не хранимое поле.
type WorkshopTab string

const (
	WorkshopTabProcessing WorkshopTab = "processing"
	WorkshopTabReady      WorkshopTab = "ready"
	WorkshopTabHistory    WorkshopTab = "history"
)

// WorkshopItem — вещь, обогащенная номером заказа для цехового экрана.
type WorkshopItem struct {
	entities.OrderItem
	OrderNumber string `db:"order_number"`
}

type OrderItemRepositoryInterface interface {
	CreateBatchInTx(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error
	FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderItem, error)
	SumSubtotalsInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error)
	SendToWorkshopInTx(ctx context.Context, tx pgx.Tx, orderID uint64, itemIDs []uint64) (int64, error)
	UpdateStatusFromWorkshop(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error)
	ListWorkshop(ctx context.Context, businessID uint64, tab WorkshopTab) ([]WorkshopItem, error)
}

type OrderItemRepository struct {
	storage *pgxpool.Pool
}

func NewOrderItemRepository(storage *pgxpool.Pool) OrderItemRepositoryInterface {
	return &OrderItemRepository{storage: storage}
}

const itemColumns = `
	id, order_id, item_name, service_name, quantity, unit_price, subtotal,
	status, sent_to_workshop, color, brand, notes, created_at`

func scanItem(row pgx.Row) (*entities.OrderItem, error) {
	var it entities.OrderItem
	err := row.Scan(
		&it.ID, &it.OrderID, &it.ItemName, &it.ServiceName, &it.Quantity,
		&it.UnitPrice, &it.Subtotal, &it.Status, &it.SentToWorkshop,
		&it.Color, &it.Brand, &it.Notes, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования вещи: %w", err)
	}
	return &it, nil
}

func (r *OrderItemRepository) CreateBatchInTx(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) error {
	query := `
		INSERT INTO order_items (
			order_id, item_name, service_name, quantity, unit_price,
			subtotal, status, sent_to_workshop, color, brand, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for i := range items {
		it := &items[i]
		it.OrderID = orderID
		_, err := tx.Exec(ctx, query,
			orderID, it.ItemName, it.ServiceName, it.Quantity, it.UnitPrice,
			it.Subtotal, it.Status, it.SentToWorkshop, it.Color, it.Brand, it.Notes,
		)
		if err != nil {
			return fmt.Errorf("ошибка создания вещи заказа: %w", err)
		}
	}
	return nil
}

func (r *OrderItemRepository) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderItem, error) {
	query := `SELECT` + itemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вещей заказа: %w", err)
	}
	defer rows.Close()

	items := make([]entities.OrderItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// SumSubtotalsInTx пересчитывает сумму заказа из строк вещей — источником
// правды всегда являются вещи, а не хранимый агрегат.
func (r *OrderItemRepository) SumSubtotalsInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error) {
	var total float64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(subtotal), 0) FROM order_items WHERE order_id = $1`,
		orderID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка пересчета суммы заказа: %w", err)
	}
	return total, nil
}

// SendToWorkshopInTx помечает вещи заказа как отправленные в цех.
// Вещи, не принадлежащие заказу, молча отфильтровываются условием WHERE:
// частично чужой список не роняет всю партию.
func (r *OrderItemRepository) SendToWorkshopInTx(ctx context.Context, tx pgx.Tx, orderID uint64, itemIDs []uint64) (int64, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE order_items
		 SET sent_to_workshop = TRUE, status = $1
		 WHERE order_id = $2 AND id = ANY($3)`,
		constants.ItemStatusAtWorkshop, orderID, itemIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка отправки вещей в цех: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateStatusFromWorkshop — CAS-перевод вещи из цеха: строка должна
// находиться в AT_WORKSHOP и принадлежать заказу данного бизнеса.
func (r *OrderItemRepository) UpdateStatusFromWorkshop(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error) {
	query := `
		UPDATE order_items it
		SET status = $1,
		    notes = COALESCE($2, it.notes)
		FROM orders o
		WHERE it.id = $3 AND it.order_id = o.id
		  AND o.business_id = $4
		  AND it.status = $5`

	tag, err := r.storage.Exec(ctx, query, target, notes, itemID, businessID, constants.ItemStatusAtWorkshop)
	if err != nil {
		return false, fmt.Errorf("ошибка возврата вещи из цеха: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderItemRepository) ListWorkshop(ctx context.Context, businessID uint64, tab WorkshopTab) ([]WorkshopItem, error) {
	base := `
		SELECT it.id, it.order_id, it.item_name, it.service_name, it.quantity,
		       it.unit_price, it.subtotal, it.status, it.sent_to_workshop,
		       it.color, it.brand, it.notes, it.created_at, o.order_number
		FROM order_items it
		JOIN orders o ON o.id = it.order_id
		WHERE o.business_id = $1 AND it.sent_to_workshop = TRUE`

	switch tab {
	case WorkshopTabProcessing:
		base += ` AND it.status = 'AT_WORKSHOP'`
	case WorkshopTabReady:
		base += ` AND it.status = 'READY'`
	case WorkshopTabHistory:
		base += ` AND it.status IN ('WORKSHOP_RETURNED', 'COMPLETED', 'CANCELLED')`
	default:
		return nil, apperrors.NewInvalidInputError("неизвестная вкладка цеха: %s", tab)
	}
	base += ` ORDER BY it.created_at DESC, it.id DESC`

	rows, err := r.storage.Query(ctx, base, businessID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вещей цеха: %w", err)
	}
	defer rows.Close()

	items := make([]WorkshopItem, 0)
	for rows.Next() {
		var wi WorkshopItem
		err := rows.Scan(
			&wi.ID, &wi.OrderID, &wi.ItemName, &wi.ServiceName, &wi.Quantity,
			&wi.UnitPrice, &wi.Subtotal, &wi.Status, &wi.SentToWorkshop,
			&wi.Color, &wi.Brand, &wi.Notes, &wi.CreatedAt, &wi.OrderNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования вещи цеха: %w", err)
		}
		items = append(items, wi)
	}
	return items, rows.Err()
}
