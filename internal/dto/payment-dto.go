package dto

type RecordPaymentDTO struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"omitempty,oneof=CASH CARD TRANSFER"`
}
