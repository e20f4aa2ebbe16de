package listeners

import (
	"context"

	"erp-system/internal/events"
	"erp-system/internal/services"
	"erp-system/internal/workflow"
	"erp-system/pkg/eventbus"

	"go.uber.org/zap"
)

// ReportCacheListener сбрасывает кеш финансовой сводки, когда меняются счета.
type ReportCacheListener struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportCacheListener(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportCacheListener {
	return &ReportCacheListener{reportService: reportService, logger: logger}
}

func (l *ReportCacheListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.DocumentCreatedEventName, l.Handle)
	bus.Subscribe(events.DocumentStatusChangedEventName, l.Handle)
	bus.Subscribe(events.DocumentConvertedEventName, l.Handle)
}

func (l *ReportCacheListener) Handle(ctx context.Context, event eventbus.Event) error {
	if !affectsInvoices(event) {
		return nil
	}
	l.logger.Debug("Сброс кеша финансовой сводки", zap.String("event", event.Name()))
	return l.reportService.InvalidateFinancialSummary(ctx)
}

func affectsInvoices(event eventbus.Event) bool {
	switch e := event.(type) {
	case events.DocumentCreatedEvent:
		return e.DocumentType == workflow.DocumentTypeInvoice
	case events.DocumentStatusChangedEvent:
		return e.DocumentType == workflow.DocumentTypeInvoice
	case events.DocumentConvertedEvent:
		return e.TargetType == workflow.DocumentTypeInvoice
	}
	return false
}
