package entities

import (
	"time"

	"laundry-system/pkg/constants"
)

type OrderItem struct {
	ID             uint64               `json:"id" db:"id"`
	OrderID        uint64               `json:"order_id" db:"order_id"`
	ItemName       string               `json:"item_name" db:"item_name"`
	ServiceName    string               `json:"service_name" db:"service_name"`
	Quantity       int                  `json:"quantity" db:"quantity"`
	UnitPrice      float64              `json:"unit_price" db:"unit_price"`
	Subtotal       float64              `json:"subtotal" db:"subtotal"`
	Status         constants.ItemStatus `json:"status" db:"status"`
	SentToWorkshop bool                 `json:"sent_to_workshop" db:"sent_to_workshop"`
	Color          *string              `json:"color,omitempty" db:"color"`
	Brand          *string              `json:"brand,omitempty" db:"brand"`
	Notes          *string              `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
}
