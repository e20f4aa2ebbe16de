package listeners

import (
	"context"
	"sync/atomic"
	"testing"

	"erp-system/internal/dto"
	"erp-system/internal/events"
	"erp-system/internal/workflow"
	"erp-system/pkg/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeReportService struct {
	invalidations int32
}

func (f *fakeReportService) GetFinancialSummary(ctx context.Context, dateFrom, dateTo string) (*dto.FinancialSummaryDTO, error) {
	return &dto.FinancialSummaryDTO{}, nil
}

func (f *fakeReportService) InvalidateFinancialSummary(ctx context.Context) error {
	atomic.AddInt32(&f.invalidations, 1)
	return nil
}

func TestReportCacheListener_OnlyInvoiceEvents(t *testing.T) {
	reports := &fakeReportService{}
	bus := eventbus.New(zap.NewNop())
	NewReportCacheListener(reports, zap.NewNop()).Register(bus)

	ctx := context.Background()
	bus.Publish(ctx, events.DocumentStatusChangedEvent{DocumentType: workflow.DocumentTypeQuotation})
	bus.Publish(ctx, events.DocumentCreatedEvent{DocumentType: workflow.DocumentTypeSalesOrder})
	bus.Publish(ctx, events.DocumentConvertedEvent{TargetType: workflow.DocumentTypeDeliveryNote})
	bus.Wait()
	assert.Equal(t, int32(0), atomic.LoadInt32(&reports.invalidations))

	bus.Publish(ctx, events.DocumentStatusChangedEvent{DocumentType: workflow.DocumentTypeInvoice, NewStatus: workflow.StatusPaid})
	bus.Publish(ctx, events.DocumentConvertedEvent{TargetType: workflow.DocumentTypeInvoice})
	bus.Publish(ctx, events.DocumentCreatedEvent{DocumentType: workflow.DocumentTypeInvoice})
	bus.Wait()
	assert.Equal(t, int32(3), atomic.LoadInt32(&reports.invalidations))
}

func TestAuditListener_LogsConversion(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	listener := NewAuditListener(zap.New(core))

	err := listener.Handle(context.Background(), events.DocumentConvertedEvent{
		ActorID:      5,
		Action:       workflow.ActionCreateDeliveryNote,
		SourceNumber: "SO-000001",
		TargetNumber: "DN-000002",
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "document.converted", fields["event"])
	assert.Equal(t, "SO-000001", fields["source"])
	assert.Equal(t, "DN-000002", fields["target"])
}
