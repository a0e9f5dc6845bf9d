package dto

type ExpenseRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Category   string  `json:"category" validate:"max=64"`
	Icon       string  `json:"icon" validate:"omitempty,oneof=car bike train plane"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	OccurredOn string  `json:"occurred_on" validate:"omitempty"`
}

type ExpenseResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Icon       string  `json:"icon,omitempty"`
	Amount     float64 `json:"amount"`
	OccurredOn string  `json:"occurred_on"`
	CreatedAt  string  `json:"created_at"`
}

// ExpenseListQuery is shared by the list and summary endpoints. An unknown or
// missing filter keeps every record.
type ExpenseListQuery struct {
	Filter string `query:"filter" validate:"omitempty,oneof=day week month custom"`
	Start  string `query:"start" validate:"omitempty,dateonly"`
	End    string `query:"end" validate:"omitempty,dateonly"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
