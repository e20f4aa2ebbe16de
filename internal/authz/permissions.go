// internal/authz/permissions.go
package authz

import "erp-system/internal/workflow"

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Общий просмотр справочной информации документооборота
	DocumentsView = "documents:view"

	// Коммерческие предложения
	QuotationsView         = "quotations:view"
	QuotationsCreate       = "quotations:create"
	QuotationsUpdateStatus = "quotations:update_status"

	// Заказы
	SalesOrdersView         = "sales_orders:view"
	SalesOrdersCreate       = "sales_orders:create"
	SalesOrdersUpdateStatus = "sales_orders:update_status"

	// Счета
	InvoicesView         = "invoices:view"
	InvoicesCreate       = "invoices:create"
	InvoicesUpdateStatus = "invoices:update_status"

	// Накладные
	DeliveryNotesView   = "delivery_notes:view"
	DeliveryNotesCreate = "delivery_notes:create"

	// Отчёты
	ReportsView = "reports:view"
)

// Глаголы, из которых собирается имя права документа.
const (
	VerbView         = "view"
	VerbCreate       = "create"
	VerbUpdateStatus = "update_status"
)

var resourceByType = map[workflow.DocumentType]string{
	workflow.DocumentTypeQuotation:    "quotations",
	workflow.DocumentTypeSalesOrder:   "sales_orders",
	workflow.DocumentTypeInvoice:      "invoices",
	workflow.DocumentTypeDeliveryNote: "delivery_notes",
}

// DocumentPermission собирает имя права вида "<ресурс>:<глагол>".
func DocumentPermission(documentType workflow.DocumentType, verb string) string {
	resource, ok := resourceByType[documentType]
	if !ok {
		return ""
	}
	return resource + ":" + verb
}

// ActionPermission - право, необходимое для выполнения действия над документом.
// Для конвертаций это право на создание целевого документа.
func ActionPermission(documentType workflow.DocumentType, action workflow.Action) string {
	if action == workflow.ActionUpdateStatus {
		return DocumentPermission(documentType, VerbUpdateStatus)
	}
	if _, target, ok := workflow.ConversionTarget(action); ok {
		return DocumentPermission(target, VerbCreate)
	}
	return ""
}

// AllPermissions - справочник для сидера.
var AllPermissions = []struct {
	Name        string
	Description string
}{
	{Superuser, "Суперпользователь (полный доступ)"},
	{DocumentsView, "Просмотр таблицы переходов статусов"},
	{QuotationsView, "Просмотр коммерческих предложений"},
	{QuotationsCreate, "Создание коммерческих предложений"},
	{QuotationsUpdateStatus, "Смена статуса коммерческих предложений"},
	{SalesOrdersView, "Просмотр заказов"},
	{SalesOrdersCreate, "Создание заказов (в т.ч. из КП)"},
	{SalesOrdersUpdateStatus, "Смена статуса заказов"},
	{InvoicesView, "Просмотр счетов"},
	{InvoicesCreate, "Выставление счетов (в т.ч. по заказу)"},
	{InvoicesUpdateStatus, "Смена статуса счетов"},
	{DeliveryNotesView, "Просмотр накладных"},
	{DeliveryNotesCreate, "Создание накладных по заказу"},
	{ReportsView, "Просмотр финансовых отчётов"},
}
