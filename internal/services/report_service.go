package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"erp-system/internal/authz"
	"erp-system/internal/dto"
	"erp-system/internal/entities"
	"erp-system/internal/repositories"
	"erp-system/internal/workflow"
	"erp-system/pkg/constants"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/utils"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetFinancialSummary(ctx context.Context, dateFrom, dateTo string) (*dto.FinancialSummaryDTO, error)
	InvalidateFinancialSummary(ctx context.Context) error
}

type reportService struct {
	*BaseService
	reportRepo repositories.ReportRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		BaseService: NewBaseService(cacheRepo, logger),
		reportRepo:  reportRepo,
		cacheRepo:   cacheRepo,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// GetFinancialSummary - сводка по счетам за период. Без дат берётся текущий месяц.
func (s *reportService) GetFinancialSummary(ctx context.Context, dateFrom, dateTo string) (*dto.FinancialSummaryDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.ReportsView); err != nil {
		return nil, err
	}

	filter, err := s.parsePeriod(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyFinancialSummary, utils.FormatDate(filter.DateFrom), utils.FormatDate(filter.DateTo))
	var cached dto.FinancialSummaryDTO
	if s.CacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	rows, err := s.reportRepo.GetFinancialSummary(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка построения финансовой сводки", zap.Error(err))
		return nil, err
	}

	summary := buildFinancialSummary(filter, rows)
	s.CacheSet(ctx, cacheKey, summary, s.cacheTTL)
	return summary, nil
}

func (s *reportService) parsePeriod(dateFrom, dateTo string) (entities.FinancialSummaryFilter, error) {
	now := s.now().UTC()
	filter := entities.FinancialSummaryFilter{
		DateFrom: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if strings.TrimSpace(dateFrom) != "" {
		d, err := utils.ParseDate(dateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = d
	}
	if strings.TrimSpace(dateTo) != "" {
		d, err := utils.ParseDate(dateTo)
		if err != nil {
			return filter, err
		}
		filter.DateTo = d
	}
	if filter.DateTo.Before(filter.DateFrom) {
		return filter, apperrors.NewInvalidInputError("date_to не может быть раньше date_from")
	}
	return filter, nil
}

// buildFinancialSummary считает итоги по валютам. Отменённые счета в итоги не входят.
func buildFinancialSummary(filter entities.FinancialSummaryFilter, rows []entities.FinancialSummaryRow) *dto.FinancialSummaryDTO {
	summary := &dto.FinancialSummaryDTO{
		DateFrom: utils.FormatDate(filter.DateFrom),
		DateTo:   utils.FormatDate(filter.DateTo),
		Rows:     make([]dto.FinancialSummaryRowDTO, 0, len(rows)),
		Totals:   make([]dto.FinancialTotalsDTO, 0),
	}

	totalsByCurrency := make(map[string]*dto.FinancialTotalsDTO)
	var currencies []string
	for _, r := range rows {
		summary.Rows = append(summary.Rows, dto.FinancialSummaryRowDTO{
			Status:     r.Status,
			Currency:   r.Currency,
			Count:      r.Count,
			Subtotal:   r.Subtotal,
			TaxTotal:   r.TaxTotal,
			GrandTotal: r.GrandTotal,
		})

		totals, ok := totalsByCurrency[r.Currency]
		if !ok {
			totals = &dto.FinancialTotalsDTO{Currency: r.Currency}
			totalsByCurrency[r.Currency] = totals
			currencies = append(currencies, r.Currency)
		}

		switch workflow.Status(r.Status) {
		case workflow.StatusCancelled:
			continue
		case workflow.StatusPaid:
			totals.Paid += r.GrandTotal
		case workflow.StatusOverdue:
			totals.Overdue += r.GrandTotal
			totals.Outstanding += r.GrandTotal
		default:
			totals.Outstanding += r.GrandTotal
		}
		totals.Invoiced += r.GrandTotal
	}

	for _, c := range currencies {
		summary.Totals = append(summary.Totals, *totalsByCurrency[c])
	}
	return summary
}

// InvalidateFinancialSummary сбрасывает все закешированные сводки.
func (s *reportService) InvalidateFinancialSummary(ctx context.Context) error {
	deleted, err := s.cacheRepo.DelByPattern(ctx, constants.CacheKeyFinancialSummaryPattern)
	if err != nil {
		return fmt.Errorf("ошибка сброса кеша финансовой сводки: %w", err)
	}
	s.logger.Debug("Кеш финансовой сводки сброшен", zap.Int64("keys", deleted))
	return nil
}
