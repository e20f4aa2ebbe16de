package listeners

import (
	"context"

	"erp-system/internal/events"
	"erp-system/pkg/eventbus"

	"go.uber.org/zap"
)

// AuditListener пишет структурированную запись о каждом изменении документов.
type AuditListener struct {
	logger *zap.Logger
}

func NewAuditListener(logger *zap.Logger) *AuditListener {
	return &AuditListener{logger: logger}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.DocumentCreatedEventName, l.Handle)
	bus.Subscribe(events.DocumentStatusChangedEventName, l.Handle)
	bus.Subscribe(events.DocumentConvertedEventName, l.Handle)
}

func (l *AuditListener) Handle(_ context.Context, event eventbus.Event) error {
	switch e := event.(type) {
	case events.DocumentCreatedEvent:
		l.logger.Info("audit",
			zap.String("event", e.Name()),
			zap.String("tx_id", e.TxID.String()),
			zap.Uint64("actor_id", e.ActorID),
			zap.String("number", e.Number),
			zap.String("status", e.Status.String()),
		)
	case events.DocumentStatusChangedEvent:
		l.logger.Info("audit",
			zap.String("event", e.Name()),
			zap.String("tx_id", e.TxID.String()),
			zap.Uint64("actor_id", e.ActorID),
			zap.String("number", e.Number),
			zap.String("from", e.OldStatus.String()),
			zap.String("to", e.NewStatus.String()),
			zap.String("comment", e.Comment),
		)
	case events.DocumentConvertedEvent:
		l.logger.Info("audit",
			zap.String("event", e.Name()),
			zap.String("tx_id", e.TxID.String()),
			zap.Uint64("actor_id", e.ActorID),
			zap.String("action", e.Action.String()),
			zap.String("source", e.SourceNumber),
			zap.String("target", e.TargetNumber),
		)
	default:
		l.logger.Warn("audit: неизвестное событие", zap.String("event", event.Name()))
	}
	return nil
}
