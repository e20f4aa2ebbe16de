package authz

import (
	"testing"

	"erp-system/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func TestCanDo(t *testing.T) {
	viewer := Context{ActorID: 1, Permissions: PermissionsToMap([]string{QuotationsView})}
	admin := Context{ActorID: 2, Permissions: PermissionsToMap([]string{Superuser})}
	nobody := Context{ActorID: 3}

	assert.True(t, CanDo(QuotationsView, viewer))
	assert.False(t, CanDo(QuotationsCreate, viewer))
	assert.True(t, CanDo(InvoicesUpdateStatus, admin))
	assert.False(t, CanDo(QuotationsView, nobody))
	assert.False(t, CanDo("", admin), "пустое право не выдаётся даже суперпользователю")
}

func TestDocumentPermission(t *testing.T) {
	assert.Equal(t, SalesOrdersUpdateStatus, DocumentPermission(workflow.DocumentTypeSalesOrder, VerbUpdateStatus))
	assert.Equal(t, DeliveryNotesView, DocumentPermission(workflow.DocumentTypeDeliveryNote, VerbView))
	assert.Empty(t, DocumentPermission("credit_note", VerbView))
}

func TestActionPermission(t *testing.T) {
	assert.Equal(t, SalesOrdersCreate, ActionPermission(workflow.DocumentTypeQuotation, workflow.ActionConvertToSalesOrder))
	assert.Equal(t, InvoicesCreate, ActionPermission(workflow.DocumentTypeSalesOrder, workflow.ActionCreateInvoice))
	assert.Equal(t, DeliveryNotesCreate, ActionPermission(workflow.DocumentTypeSalesOrder, workflow.ActionCreateDeliveryNote))
	assert.Equal(t, InvoicesUpdateStatus, ActionPermission(workflow.DocumentTypeInvoice, workflow.ActionUpdateStatus))
}

func TestFilterActions(t *testing.T) {
	accountant := Context{Permissions: PermissionsToMap([]string{InvoicesCreate})}
	actions := workflow.ResolveActions(workflow.DocumentTypeSalesOrder, workflow.StatusConfirmed)

	assert.Equal(t, []workflow.Action{workflow.ActionCreateInvoice}, FilterActions(workflow.DocumentTypeSalesOrder, actions, accountant))
	assert.Empty(t, FilterActions(workflow.DocumentTypeSalesOrder, actions, Context{}))
}
