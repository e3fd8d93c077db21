package entities

import "time"

type Customer struct {
	ID         uint64    `json:"id" db:"id"`
	BusinessID uint64    `json:"business_id" db:"business_id"`
	Name       string    `json:"name" db:"name"`
	Phone      string    `json:"phone" db:"phone"`
	Address    *string   `json:"address,omitempty" db:"address"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
