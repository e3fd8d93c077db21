package entities

import (
	"time"

	"laundry-system/pkg/constants"
)

// Notification — запись уведомления. UserID == nil означает уведомление
// всего бизнеса (видно всем пользователям арендатора).
type Notification struct {
	ID         uint64                     `json:"id" db:"id"`
	BusinessID uint64                     `json:"business_id" db:"business_id"`
	UserID     *uint64                    `json:"user_id,omitempty" db:"user_id"`
	Type       constants.NotificationType `json:"type" db:"type"`
	Title      string                     `json:"title" db:"title"`
	Message    string                     `json:"message" db:"message"`
	IsRead     bool                       `json:"is_read" db:"is_read"`
	ReadAt     *time.Time                 `json:"read_at,omitempty" db:"read_at"`
	Metadata   map[string]interface{}     `json:"metadata,omitempty" db:"metadata"`
	CreatedAt  time.Time                  `json:"created_at" db:"created_at"`
}
