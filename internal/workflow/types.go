package workflow

// DocumentType - вид бизнес-документа. Значения совпадают с document_type в БД.
type DocumentType string

const (
	DocumentTypeQuotation    DocumentType = "quotation"
	DocumentTypeSalesOrder   DocumentType = "sales_order"
	DocumentTypeInvoice      DocumentType = "invoice"
	DocumentTypeDeliveryNote DocumentType = "delivery_note"
)

// DocumentTypes - все типы в порядке жизненного цикла.
var DocumentTypes = []DocumentType{
	DocumentTypeQuotation,
	DocumentTypeSalesOrder,
	DocumentTypeInvoice,
	DocumentTypeDeliveryNote,
}

func (t DocumentType) String() string { return string(t) }

func (t DocumentType) IsValid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NumberPrefix - префикс номера документа (QT-000001).
func (t DocumentType) NumberPrefix() string {
	switch t {
	case DocumentTypeQuotation:
		return "QT"
	case DocumentTypeSalesOrder:
		return "SO"
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypeDeliveryNote:
		return "DN"
	}
	return "DOC"
}

// Status - статус документа.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
)

func (s Status) String() string { return string(s) }
