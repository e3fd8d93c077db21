package dto

type SendToWorkshopDTO struct {
	ItemIDs []uint64 `json:"item_ids" validate:"required,min=1"`
}

type ReturnItemDTO struct {
	Notes *string `json:"notes,omitempty"`
}
