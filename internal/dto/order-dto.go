package dto

import "time"

type CreateOrderItemDTO struct {
	ItemName    string  `json:"item_name" validate:"required"`
	ServiceName string  `json:"service_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Color       *string `json:"color,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type CreateOrderDTO struct {
	StoreID      uint64               `json:"store_id" validate:"required"`
	CustomerID   uint64               `json:"customer_id" validate:"required"`
	Priority     string               `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	PickupDate   *time.Time           `json:"pickup_date,omitempty"`
	DeliveryDate *time.Time           `json:"delivery_date,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Items        []CreateOrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

type AddOrderItemsDTO struct {
	Items []CreateOrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

// TransitionOrderDTO — явный перевод заказа между статусами.
// ExpectedStatus служит CAS-защитой от потерянных обновлений.
type TransitionOrderDTO struct {
	ExpectedStatus string  `json:"expected_status" validate:"required"`
	TargetStatus   string  `json:"target_status" validate:"required"`
	Notes          *string `json:"notes,omitempty"`
}

type CancelOrderDTO struct {
	Notes *string `json:"notes,omitempty"`
}
