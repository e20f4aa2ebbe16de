package repositories

import (
	"context"
	"fmt"

	"erp-system/internal/entities"
	"erp-system/internal/workflow"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	GetFinancialSummary(ctx context.Context, filter entities.FinancialSummaryFilter) ([]entities.FinancialSummaryRow, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

// buildFinancialSummaryQuery группирует счета периода по статусу и валюте.
func buildFinancialSummaryQuery(filter entities.FinancialSummaryFilter) sq.SelectBuilder {
	return psql.Select(
		"status", "currency", "COUNT(*)",
		"COALESCE(SUM(subtotal), 0)", "COALESCE(SUM(tax_total), 0)", "COALESCE(SUM(grand_total), 0)",
	).
		From(documentTable).
		Where(sq.Eq{"document_type": workflow.DocumentTypeInvoice.String()}).
		Where(sq.GtOrEq{"issue_date": filter.DateFrom}).
		Where(sq.LtOrEq{"issue_date": filter.DateTo}).
		GroupBy("status", "currency").
		OrderBy("currency", "status")
}

func (r *reportRepository) GetFinancialSummary(ctx context.Context, filter entities.FinancialSummaryFilter) ([]entities.FinancialSummaryRow, error) {
	query, args, err := buildFinancialSummaryQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса отчёта: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса отчёта: %w", err)
	}
	defer rows.Close()

	result := make([]entities.FinancialSummaryRow, 0)
	for rows.Next() {
		var row entities.FinancialSummaryRow
		if err := rows.Scan(&row.Status, &row.Currency, &row.Count, &row.Subtotal, &row.TaxTotal, &row.GrandTotal); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчёта: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
