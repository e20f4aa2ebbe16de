package dto

type FinancialSummaryRowDTO struct {
	Status     string `json:"status"`
	Currency   string `json:"currency"`
	Count      int64  `json:"count"`
	Subtotal   int64  `json:"subtotal"`
	TaxTotal   int64  `json:"tax_total"`
	GrandTotal int64  `json:"grand_total"`
}

// FinancialTotalsDTO - итоги по одной валюте. Отменённые счета в итоги не входят.
type FinancialTotalsDTO struct {
	Currency    string `json:"currency"`
	Invoiced    int64  `json:"invoiced"`
	Paid        int64  `json:"paid"`
	Outstanding int64  `json:"outstanding"`
	Overdue     int64  `json:"overdue"`
}

type FinancialSummaryDTO struct {
	DateFrom string                   `json:"date_from"`
	DateTo   string                   `json:"date_to"`
	Rows     []FinancialSummaryRowDTO `json:"rows"`
	Totals   []FinancialTotalsDTO     `json:"totals"`
}
