package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"erp-system/internal/dto"
	"erp-system/internal/services"
	"erp-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	summaryRowHeaders    = []interface{}{"Статус", "Валюта", "Кол-во счетов", "Без налога", "Налог", "Итого"}
	summaryTotalsHeaders = []interface{}{"Валюта", "Выставлено", "Оплачено", "К оплате", "Просрочено"}
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetFinancialSummary: ?date_from=&date_to=&format=json|xlsx
func (c *ReportController) GetFinancialSummary(ctx echo.Context) error {
	summary, err := c.reportService.GetFinancialSummary(
		ctx.Request().Context(),
		ctx.QueryParam("date_from"),
		ctx.QueryParam("date_to"),
	)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.EqualFold(ctx.QueryParam("format"), "xlsx") {
		return c.respondWithXLSX(ctx, summary)
	}
	return utils.SuccessResponse(ctx, summary, "Финансовая сводка получена", http.StatusOK)
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, summary *dto.FinancialSummaryDTO) error {
	f, err := buildFinancialSummaryXLSX(summary)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("financial_summary_%s_%s.xlsx", summary.DateFrom, summary.DateTo)
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

// buildFinancialSummaryXLSX - два листа: строки по статусам и итоги по валютам.
// Суммы выводятся в минимальных единицах валюты, как в API.
func buildFinancialSummaryXLSX(summary *dto.FinancialSummaryDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rowsSheet := "Сводка"
	if err := f.SetSheetName("Sheet1", rowsSheet); err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Счета за период %s - %s", summary.DateFrom, summary.DateTo)
	if err := f.SetCellValue(rowsSheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(rowsSheet, "A3", &summaryRowHeaders); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(rowsSheet, "A3", "F3", bold); err != nil {
		return nil, err
	}
	for i, r := range summary.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		row := []interface{}{r.Status, r.Currency, r.Count, r.Subtotal, r.TaxTotal, r.GrandTotal}
		if err := f.SetSheetRow(rowsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(rowsSheet, "A", "F", 16)

	totalsSheet := "Итоги"
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(totalsSheet, "A1", &summaryTotalsHeaders); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(totalsSheet, "A1", "E1", bold); err != nil {
		return nil, err
	}
	for i, t := range summary.Totals {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{t.Currency, t.Invoiced, t.Paid, t.Outstanding, t.Overdue}
		if err := f.SetSheetRow(totalsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(totalsSheet, "A", "E", 16)

	return f, nil
}
