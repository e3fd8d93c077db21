package repositories

import (
	"context"
	"errors"
	"fmt"

	"laundry-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepositoryInterface interface {
	GetNotificationSettings(ctx context.Context, userID uint64) (*entities.NotificationSettings, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

// GetNotificationSettings читает флаги уведомлений пользователя.
// Отсутствие записи — не ошибка: возвращаются настройки "все включено".
func (r *UserRepository) GetNotificationSettings(ctx context.Context, userID uint64) (*entities.NotificationSettings, error) {
	var s entities.NotificationSettings
	err := r.storage.QueryRow(ctx,
		`SELECT user_id, notify_new_orders, notify_status_updates, notify_payments, notify_low_stock
		 FROM notification_settings WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.NotifyNewOrders, &s.NotifyStatusUpdates, &s.NotifyPayments, &s.NotifyLowStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entities.NotificationSettings{
				UserID:              userID,
				NotifyNewOrders:     true,
				NotifyStatusUpdates: true,
				NotifyPayments:      true,
				NotifyLowStock:      true,
			}, nil
		}
		return nil, fmt.Errorf("ошибка чтения настроек уведомлений: %w", err)
	}
	return &s, nil
}
