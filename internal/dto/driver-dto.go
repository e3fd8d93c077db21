package dto

// AssignDriverDTO: DriverID == nil снимает водителя с заказа.
type AssignDriverDTO struct {
	DriverID *uint64 `json:"driver_id"`
}

type CreateDriverDTO struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type UpdateDriverDTO struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
