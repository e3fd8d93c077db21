package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"laundry-system/internal/entities"
	apperrors "laundry-system/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *entities.Notification) error
	ListForUser(ctx context.Context, businessID, userID uint64, onlyUnread bool) ([]entities.Notification, error)
	MarkRead(ctx context.Context, businessID, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, businessID, userID uint64) error
	Delete(ctx context.Context, businessID, userID, notificationID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	var metadata []byte
	if n.Metadata != nil {
		var err error
		metadata, err = json.Marshal(n.Metadata)
		if err != nil {
			return fmt.Errorf("ошибка сериализации metadata уведомления: %w", err)
		}
	}

	err := r.storage.QueryRow(ctx,
		`INSERT INTO notifications (business_id, user_id, type, title, message, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		n.BusinessID, n.UserID, n.Type, n.Title, n.Message, metadata,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}
	return nil
}

// ListForUser возвращает персональные уведомления пользователя плюс
// общебизнесовые (user_id IS NULL) его арендатора.
func (r *NotificationRepository) ListForUser(ctx context.Context, businessID, userID uint64, onlyUnread bool) ([]entities.Notification, error) {
	query := `
		SELECT id, business_id, user_id, type, title, message, is_read, read_at, metadata, created_at
		FROM notifications
		WHERE business_id = $1 AND (user_id = $2 OR user_id IS NULL)`
	if onlyUnread {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT 200`

	rows, err := r.storage.Query(ctx, query, businessID, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения уведомлений: %w", err)
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		var n entities.Notification
		var metadata []byte
		if err := rows.Scan(
			&n.ID, &n.BusinessID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.ReadAt, &metadata, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования уведомления: %w", err)
		}
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &n.Metadata)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, businessID, userID, notificationID uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW()
		 WHERE id = $1 AND business_id = $2 AND (user_id = $3 OR user_id IS NULL)`,
		notificationID, businessID, userID,
	)
	if err != nil {
		return fmt.Errorf("ошибка отметки уведомления прочитанным: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, businessID, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW()
		 WHERE business_id = $1 AND (user_id = $2 OR user_id IS NULL) AND is_read = FALSE`,
		businessID, userID,
	)
	if err != nil {
		return fmt.Errorf("ошибка массовой отметки уведомлений: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, businessID, userID, notificationID uint64) error {
	tag, err := r.storage.Exec(ctx,
		`DELETE FROM notifications
		 WHERE id = $1 AND business_id = $2 AND (user_id = $3 OR user_id IS NULL)`,
		notificationID, businessID, userID,
	)
	if err != nil {
		return fmt.Errorf("ошибка удаления уведомления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
