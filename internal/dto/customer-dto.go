package dto

type CreateCustomerDTO struct {
	Name    string  `json:"name" validate:"required"`
	Phone   string  `json:"phone" validate:"required"`
	Address *string `json:"address,omitempty"`
}

type CreateStoreDTO struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address,omitempty"`
}
