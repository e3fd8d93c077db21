package repositories

import (
	"context"
	"fmt"

	"laundry-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.OrderStatusHistory) error
	FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error)
}

type OrderHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewOrderHistoryRepository(storage *pgxpool.Pool) OrderHistoryRepositoryInterface {
	return &OrderHistoryRepository{storage: storage}
}

// CreateInTx добавляет строку журнала. Журнал append-only: никаких
// UPDATE/DELETE по order_status_history в коде нет.
func (r *OrderHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.OrderStatusHistory) error {
	query := `
		INSERT INTO order_status_history (order_id, from_status, to_status, actor_kind, actor_id, actor_name, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		history.OrderID, history.FromStatus, history.ToStatus,
		history.ActorKind, history.ActorID, history.ActorName, history.Notes,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи истории статусов: %w", err)
	}
	return nil
}

func (r *OrderHistoryRepository) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error) {
	query := `
		SELECT id, order_id, from_status, to_status, actor_kind, actor_id, actor_name, notes, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории статусов: %w", err)
	}
	defer rows.Close()

	history := make([]entities.OrderStatusHistory, 0)
	for rows.Next() {
		var h entities.OrderStatusHistory
		if err := rows.Scan(
			&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus,
			&h.ActorKind, &h.ActorID, &h.ActorName, &h.Notes, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования истории: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
