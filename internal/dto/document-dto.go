package dto

import "github.com/aarondl/null/v8"

type DocumentLineInputDTO struct {
	ItemCode    *string `json:"item_code" validate:"omitempty,max=64"`
	Description string  `json:"description" validate:"required,min=1,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   int64   `json:"unit_price" validate:"gte=0"`
	TaxRate     float64 `json:"tax_rate" validate:"gte=0,lte=100"`
}

type CreateDocumentDTO struct {
	CustomerName  string                 `json:"customer_name" validate:"required,min=1,max=255"`
	CustomerEmail *string                `json:"customer_email" validate:"omitempty,email"`
	Currency      string                 `json:"currency" validate:"omitempty,currency_code"`
	Notes         *string                `json:"notes" validate:"omitempty,max=2000"`
	IssueDate     string                 `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       *string                `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Lines         []DocumentLineInputDTO `json:"lines" validate:"required,min=1,dive"`
}

type UpdateDocumentStatusDTO struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type DocumentLineDTO struct {
	ID          uint64      `json:"id"`
	LineNo      int         `json:"line_no"`
	ItemCode    null.String `json:"item_code"`
	Description string      `json:"description"`
	Quantity    float64     `json:"quantity"`
	UnitPrice   int64       `json:"unit_price"`
	TaxRate     float64     `json:"tax_rate"`
	LineTotal   int64       `json:"line_total"`
	TaxAmount   int64       `json:"tax_amount"`
}

type DocumentDTO struct {
	ID                uint64            `json:"id"`
	DocumentType      string            `json:"document_type"`
	Number            string            `json:"number"`
	Status            string            `json:"status"`
	CustomerName      string            `json:"customer_name"`
	CustomerEmail     null.String       `json:"customer_email"`
	Currency          string            `json:"currency"`
	Notes             null.String       `json:"notes"`
	IssueDate         string            `json:"issue_date"`
	DueDate           null.String       `json:"due_date"`
	RelatedDocumentID null.Uint64       `json:"related_document_id"`
	Subtotal          int64             `json:"subtotal"`
	TaxTotal          int64             `json:"tax_total"`
	GrandTotal        int64             `json:"grand_total"`
	CreatedBy         uint64            `json:"created_by"`
	PaidAt            null.String       `json:"paid_at"`
	CreatedAt         string            `json:"created_at"`
	UpdatedAt         string            `json:"updated_at"`
	Lines             []DocumentLineDTO `json:"lines,omitempty"`
}

type ActionDTO struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	Permission string `json:"permission"`
}

// DocumentActionsDTO - всё, что нужно UI для бейджа статуса, списка статусов и кнопок.
type DocumentActionsDTO struct {
	DocumentID          uint64      `json:"document_id"`
	DocumentType        string      `json:"document_type"`
	Status              string      `json:"status"`
	Terminal            bool        `json:"terminal"`
	AllowedNextStatuses []string    `json:"allowed_next_statuses"`
	Actions             []ActionDTO `json:"actions"`
}

type DocumentHistoryDTO struct {
	ID        uint64      `json:"id"`
	EventType string      `json:"event_type"`
	OldValue  null.String `json:"old_value"`
	NewValue  null.String `json:"new_value"`
	Comment   null.String `json:"comment"`
	UserID    uint64      `json:"user_id"`
	UserFio   null.String `json:"user_fio"`
	TxID      null.String `json:"tx_id"`
	CreatedAt string      `json:"created_at"`
}
