package workflow

// Action - бизнес-действие, доступное для документа в текущем статусе.
type Action string

const (
	ActionConvertToSalesOrder Action = "convert_to_sales_order"
	ActionCreateInvoice       Action = "create_invoice"
	ActionCreateDeliveryNote  Action = "create_delivery_note"
	ActionUpdateStatus        Action = "update_status"
)

func (a Action) String() string { return string(a) }

type conversionRule struct {
	source DocumentType
	status Status
	action Action
	target DocumentType
}

// conversionRules: из какого документа и в каком статусе какой документ можно создать.
var conversionRules = []conversionRule{
	{DocumentTypeQuotation, StatusAccepted, ActionConvertToSalesOrder, DocumentTypeSalesOrder},
	{DocumentTypeSalesOrder, StatusConfirmed, ActionCreateInvoice, DocumentTypeInvoice},
	{DocumentTypeSalesOrder, StatusConfirmed, ActionCreateDeliveryNote, DocumentTypeDeliveryNote},
}

// ResolveActions возвращает действия для документа. Зависит только от текущего статуса.
func ResolveActions(documentType DocumentType, status Status) []Action {
	actions := make([]Action, 0)
	for _, rule := range conversionRules {
		if rule.source == documentType && rule.status == status {
			actions = append(actions, rule.action)
		}
	}
	if !IsTerminal(documentType, status) {
		actions = append(actions, ActionUpdateStatus)
	}
	return actions
}

// HasAction - доступно ли действие документу в данном статусе.
func HasAction(documentType DocumentType, status Status, action Action) bool {
	for _, a := range ResolveActions(documentType, status) {
		if a == action {
			return true
		}
	}
	return false
}

// ConversionTarget - тип документа, который создаёт действие-конвертация.
func ConversionTarget(action Action) (source, target DocumentType, ok bool) {
	for _, rule := range conversionRules {
		if rule.action == action {
			return rule.source, rule.target, true
		}
	}
	return "", "", false
}
