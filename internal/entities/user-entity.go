package entities

import "time"

type User struct {
	ID         uint64    `json:"id" db:"id"`
	BusinessID uint64    `json:"business_id" db:"business_id"`
	Name       string    `json:"name" db:"name"`
	Role       string    `json:"role" db:"role"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NotificationSettings — персональные флаги получения уведомлений.
// Отсутствие записи трактуется как "все включено".
type NotificationSettings struct {
	UserID              uint64 `json:"user_id" db:"user_id"`
	NotifyNewOrders     bool   `json:"notify_new_orders" db:"notify_new_orders"`
	NotifyStatusUpdates bool   `json:"notify_status_updates" db:"notify_status_updates"`
	NotifyPayments      bool   `json:"notify_payments" db:"notify_payments"`
	NotifyLowStock      bool   `json:"notify_low_stock" db:"notify_low_stock"`
}

// AllowsType возвращает, включен ли флаг с данным именем.
// Пустое имя флага (неизвестный тип уведомления) всегда разрешено.
func (s NotificationSettings) AllowsType(flag string) bool {
	switch flag {
	case "notify_new_orders":
		return s.NotifyNewOrders
	case "notify_status_updates":
		return s.NotifyStatusUpdates
	case "notify_payments":
		return s.NotifyPayments
	case "notify_low_stock":
		return s.NotifyLowStock
	}
	return true
}
