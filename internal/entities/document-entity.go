package entities

import (
	"math"
	"time"

	"erp-system/internal/workflow"
	"erp-system/pkg/types"
)

// Document - КП, заказ, счёт или накладная. Суммы хранятся в минимальных единицах валюты.
type Document struct {
	ID                uint64                `json:"id"`
	DocumentType      workflow.DocumentType `json:"document_type"`
	Number            string                `json:"number"`
	Status            workflow.Status       `json:"status"`
	CustomerName      string                `json:"customer_name"`
	CustomerEmail     *string               `json:"customer_email"`
	Currency          string                `json:"currency"`
	Notes             *string               `json:"notes"`
	IssueDate         time.Time             `json:"issue_date"`
	DueDate           *time.Time            `json:"due_date"`
	RelatedDocumentID *uint64               `json:"related_document_id"`
	Subtotal          int64                 `json:"subtotal"`
	TaxTotal          int64                 `json:"tax_total"`
	GrandTotal        int64                 `json:"grand_total"`
	CreatedBy         uint64                `json:"created_by"`
	PaidAt            *time.Time            `json:"paid_at"`

	Lines []DocumentLine `json:"lines,omitempty"`

	types.BaseEntity
}

type DocumentLine struct {
	ID          uint64  `json:"id"`
	DocumentID  uint64  `json:"document_id"`
	LineNo      int     `json:"line_no"`
	ItemCode    *string `json:"item_code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   int64   `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	LineTotal   int64   `json:"line_total"`
	TaxAmount   int64   `json:"tax_amount"`
}

// Recalculate пересчитывает сумму и налог строки.
func (l *DocumentLine) Recalculate() {
	l.LineTotal = int64(math.Round(l.Quantity * float64(l.UnitPrice)))
	l.TaxAmount = int64(math.Round(float64(l.LineTotal) * l.TaxRate / 100))
}

// RecalculateTotals пересчитывает строки, их нумерацию и итоги документа.
func (d *Document) RecalculateTotals() {
	d.Subtotal, d.TaxTotal = 0, 0
	for i := range d.Lines {
		d.Lines[i].LineNo = i + 1
		d.Lines[i].Recalculate()
		d.Subtotal += d.Lines[i].LineTotal
		d.TaxTotal += d.Lines[i].TaxAmount
	}
	d.GrandTotal = d.Subtotal + d.TaxTotal
}

// CopyLines - копия позиций без идентификаторов, для нового документа.
func (d *Document) CopyLines() []DocumentLine {
	lines := make([]DocumentLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		c := l
		c.ID, c.DocumentID = 0, 0
		if l.ItemCode != nil {
			code := *l.ItemCode
			c.ItemCode = &code
		}
		lines = append(lines, c)
	}
	return lines
}

// DocumentFilter - параметры выборки списка документов.
type DocumentFilter struct {
	DocumentType workflow.DocumentType
	Statuses     []workflow.Status
	Search       string
	DateFrom     *time.Time
	DateTo       *time.Time
	RelatedID    *uint64
	Sort         map[string]string
	Limit        uint64
	Offset       uint64
}
