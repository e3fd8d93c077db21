package entities

import (
	"time"

	"laundry-system/pkg/constants"
)

type Order struct {
	ID            uint64                  `json:"id" db:"id"`
	BusinessID    uint64                  `json:"business_id" db:"business_id"`
	StoreID       uint64                  `json:"store_id" db:"store_id"`
	CustomerID    uint64                  `json:"customer_id" db:"customer_id"`
	DriverID      *uint64                 `json:"driver_id,omitempty" db:"driver_id"`
	OrderNumber   string                  `json:"order_number" db:"order_number"`
	Status        constants.OrderStatus   `json:"status" db:"status"`
	PaymentStatus constants.PaymentStatus `json:"payment_status" db:"payment_status"`
	TotalAmount   float64                 `json:"total_amount" db:"total_amount"`
	PaidAmount    float64                 `json:"paid_amount" db:"paid_amount"`
	Priority      string                  `json:"priority" db:"priority"`
	Notes         *string                 `json:"notes,omitempty" db:"notes"`

	// Запрошенные клиентом окна
	PickupDate   *time.Time `json:"pickup_date,omitempty" db:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty" db:"delivery_date"`

	// Фактические отметки времени
	AssignedAt    *time.Time `json:"assigned_at,omitempty" db:"assigned_at"`
	PickedUpAt    *time.Time `json:"picked_up_at,omitempty" db:"picked_up_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	CompletedDate *time.Time `json:"completed_date,omitempty" db:"completed_date"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty" db:"-"`
}
