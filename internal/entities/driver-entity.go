package entities

import "time"

type Driver struct {
	ID         uint64    `json:"id" db:"id"`
	BusinessID uint64    `json:"business_id" db:"business_id"`
	Name       string    `json:"name" db:"name"`
	Phone      string    `json:"phone" db:"phone"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
