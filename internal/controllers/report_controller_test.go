package controllers

import (
	"testing"

	"erp-system/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFinancialSummaryXLSX(t *testing.T) {
	summary := &dto.FinancialSummaryDTO{
		DateFrom: "2024-01-01",
		DateTo:   "2024-01-31",
		Rows: []dto.FinancialSummaryRowDTO{
			{Status: "paid", Currency: "USD", Count: 2, Subtotal: 1000, TaxTotal: 200, GrandTotal: 1200},
			{Status: "overdue", Currency: "USD", Count: 1, Subtotal: 500, TaxTotal: 0, GrandTotal: 500},
		},
		Totals: []dto.FinancialTotalsDTO{
			{Currency: "USD", Invoiced: 1700, Paid: 1200, Outstanding: 500, Overdue: 500},
		},
	}

	f, err := buildFinancialSummaryXLSX(summary)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Сводка", "Итоги"}, f.GetSheetList())

	status, err := f.GetCellValue("Сводка", "A4")
	require.NoError(t, err)
	assert.Equal(t, "paid", status)

	grand, err := f.GetCellValue("Сводка", "F5")
	require.NoError(t, err)
	assert.Equal(t, "500", grand)

	outstanding, err := f.GetCellValue("Итоги", "D2")
	require.NoError(t, err)
	assert.Equal(t, "500", outstanding)
}
