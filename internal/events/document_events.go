package events

import (
	"github.com/google/uuid"

	"erp-system/internal/workflow"
)

const (
	DocumentCreatedEventName       = "document.created"
	DocumentStatusChangedEventName = "document.status.changed"
	DocumentConvertedEventName     = "document.converted"
)

// DocumentCreatedEvent - документ создан напрямую, не конвертацией.
type DocumentCreatedEvent struct {
	TxID         uuid.UUID
	ActorID      uint64
	DocumentID   uint64
	DocumentType workflow.DocumentType
	Number       string
	Status       workflow.Status
}

func (e DocumentCreatedEvent) Name() string { return DocumentCreatedEventName }

type DocumentStatusChangedEvent struct {
	TxID         uuid.UUID
	ActorID      uint64
	DocumentID   uint64
	DocumentType workflow.DocumentType
	Number       string
	OldStatus    workflow.Status
	NewStatus    workflow.Status
	Comment      string
}

func (e DocumentStatusChangedEvent) Name() string { return DocumentStatusChangedEventName }

// DocumentConvertedEvent - из документа-источника создан связанный документ.
type DocumentConvertedEvent struct {
	TxID         uuid.UUID
	ActorID      uint64
	Action       workflow.Action
	SourceID     uint64
	SourceType   workflow.DocumentType
	SourceNumber string
	TargetID     uint64
	TargetType   workflow.DocumentType
	TargetNumber string
}

func (e DocumentConvertedEvent) Name() string { return DocumentConvertedEventName }
