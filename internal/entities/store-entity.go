package entities

import "time"

// Store — физический филиал внутри бизнеса.
type Store struct {
	ID         uint64    `json:"id" db:"id"`
	BusinessID uint64    `json:"business_id" db:"business_id"`
	Name       string    `json:"name" db:"name"`
	Address    *string   `json:"address,omitempty" db:"address"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
