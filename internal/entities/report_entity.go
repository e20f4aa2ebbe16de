package entities

import "time"

// FinancialSummaryRow - агрегат по счетам одного статуса и валюты.
type FinancialSummaryRow struct {
	Status     string
	Currency   string
	Count      int64
	Subtotal   int64
	TaxTotal   int64
	GrandTotal int64
}

type FinancialSummaryFilter struct {
	DateFrom time.Time
	DateTo   time.Time
}
