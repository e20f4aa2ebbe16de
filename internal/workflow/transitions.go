package workflow

import (
	apperrors "erp-system/pkg/errors"
)

// transitionTable: тип документа -> текущий статус -> допустимые следующие статусы.
// Пустой список означает финальный статус. Порядок значим: в нём же статусы
// показываются в выпадающем списке.
var transitionTable = map[DocumentType]map[Status][]Status{
	DocumentTypeQuotation: {
		StatusDraft:    {StatusSent},
		StatusSent:     {StatusAccepted, StatusRejected, StatusExpired},
		StatusAccepted: {},
		StatusRejected: {},
		StatusExpired:  {},
	},
	DocumentTypeSalesOrder: {
		StatusDraft:     {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {},
		StatusCancelled: {},
	},
	DocumentTypeInvoice: {
		StatusPending:   {StatusSent, StatusCancelled},
		StatusSent:      {StatusPaid, StatusOverdue},
		StatusPaid:      {},
		StatusOverdue:   {StatusPaid},
		StatusCancelled: {},
	},
	DocumentTypeDeliveryNote: {
		StatusDraft: {},
	},
}

var initialStatuses = map[DocumentType]Status{
	DocumentTypeQuotation:    StatusDraft,
	DocumentTypeSalesOrder:   StatusDraft,
	DocumentTypeInvoice:      StatusPending,
	DocumentTypeDeliveryNote: StatusDraft,
}

// AllowedNextStatuses возвращает статусы, в которые документ может перейти из current.
// Для неизвестной пары (тип, статус) возвращается пустой срез.
func AllowedNextStatuses(documentType DocumentType, current Status) []Status {
	byStatus, ok := transitionTable[documentType]
	if !ok {
		return []Status{}
	}
	next := byStatus[current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func CanTransition(documentType DocumentType, from, to Status) bool {
	for _, s := range transitionTable[documentType][from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает *apperrors.InvalidTransitionError, если переход запрещён.
func ValidateTransition(documentType DocumentType, from, to Status) error {
	if !CanTransition(documentType, from, to) {
		return apperrors.NewInvalidTransitionError(documentType.String(), from.String(), to.String())
	}
	return nil
}

// IsTerminal - статус без дальнейших переходов. Неизвестные статусы тоже финальные.
func IsTerminal(documentType DocumentType, status Status) bool {
	return len(transitionTable[documentType][status]) == 0
}

// InitialStatus - статус, в котором документ создаётся.
func InitialStatus(documentType DocumentType) (Status, bool) {
	s, ok := initialStatuses[documentType]
	return s, ok
}

// KnownStatuses - все статусы, которые может иметь документ данного типа.
func KnownStatuses(documentType DocumentType) []Status {
	var out []Status
	for _, s := range statusOrder {
		if _, ok := transitionTable[documentType][s]; ok {
			out = append(out, s)
		}
	}
	return out
}

var statusOrder = []Status{
	StatusDraft, StatusPending, StatusSent, StatusAccepted, StatusRejected, StatusExpired,
	StatusConfirmed, StatusOverdue, StatusPaid, StatusCancelled,
}

// TransitionRule - одна строка таблицы переходов, для выдачи через API.
type TransitionRule struct {
	DocumentType DocumentType `json:"document_type"`
	Status       Status       `json:"status"`
	AllowedNext  []Status     `json:"allowed_next"`
	Terminal     bool         `json:"terminal"`
}

// Rules разворачивает таблицу переходов в упорядоченный список.
func Rules() []TransitionRule {
	rules := make([]TransitionRule, 0)
	for _, t := range DocumentTypes {
		for _, s := range KnownStatuses(t) {
			next := AllowedNextStatuses(t, s)
			rules = append(rules, TransitionRule{
				DocumentType: t,
				Status:       s,
				AllowedNext:  next,
				Terminal:     len(next) == 0,
			})
		}
	}
	return rules
}
