package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"erp-system/internal/authz"
	"erp-system/internal/dto"
	"erp-system/internal/entities"
	"erp-system/internal/events"
	"erp-system/internal/workflow"
	"erp-system/pkg/constants"
	"erp-system/pkg/contextkeys"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/eventbus"
	"erp-system/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTxManager выполняет fn без транзакции.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// fakeDocumentRepo хранит документы в памяти и повторяет уникальность (related_document_id, document_type).
type fakeDocumentRepo struct {
	mu     sync.Mutex
	docs   map[uint64]*entities.Document
	nextID uint64
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uint64]*entities.Document)}
}

func (r *fakeDocumentRepo) GetDocuments(ctx context.Context, filter entities.DocumentFilter) ([]entities.Document, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entities.Document
	for _, d := range r.docs {
		if d.DocumentType == filter.DocumentType {
			result = append(result, *d)
		}
	}
	return result, uint64(len(result)), nil
}

func (r *fakeDocumentRepo) FindDocument(ctx context.Context, documentType workflow.DocumentType, id uint64) (*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.DocumentType != documentType {
		return nil, apperrors.ErrNotFound
	}
	c := *d
	c.Lines = append([]entities.DocumentLine(nil), d.Lines...)
	return &c, nil
}

func (r *fakeDocumentRepo) FindDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentType workflow.DocumentType, id uint64) (*entities.Document, error) {
	return r.FindDocument(ctx, documentType, id)
}

func (r *fakeDocumentRepo) CreateInTx(ctx context.Context, tx pgx.Tx, doc *entities.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.RelatedDocumentID != nil {
		for _, d := range r.docs {
			if d.RelatedDocumentID != nil && *d.RelatedDocumentID == *doc.RelatedDocumentID && d.DocumentType == doc.DocumentType {
				return apperrors.ErrConflict
			}
		}
	}
	r.nextID++
	doc.ID = r.nextID
	doc.Number = fmt.Sprintf("%s-%06d", doc.DocumentType.NumberPrefix(), doc.ID)
	for i := range doc.Lines {
		doc.Lines[i].DocumentID = doc.ID
	}
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocumentRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status workflow.Status, paidAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	d.Status = status
	if paidAt != nil {
		d.PaidAt = paidAt
	}
	return nil
}

// seed кладёт документ в заданном статусе в обход сервиса.
func (r *fakeDocumentRepo) seed(documentType workflow.DocumentType, status workflow.Status) *entities.Document {
	doc := &entities.Document{
		DocumentType: documentType,
		Status:       status,
		CustomerName: "ACME",
		Currency:     "USD",
		IssueDate:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Lines: []entities.DocumentLine{
			{Description: "Widget", Quantity: 2, UnitPrice: 1500, TaxRate: 20},
		},
	}
	doc.RecalculateTotals()
	_ = r.CreateInTx(context.Background(), nil, doc)
	return doc
}

type fakeHistoryRepo struct {
	mu     sync.Mutex
	events []entities.DocumentHistory
}

func (r *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, event *entities.DocumentHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uint64(len(r.events) + 1)
	event.CreatedAt = time.Now()
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeHistoryRepo) FindByDocumentID(ctx context.Context, documentID uint64) ([]entities.DocumentHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entities.DocumentHistory
	for _, e := range r.events {
		if e.DocumentID == documentID {
			result = append(result, e)
		}
	}
	return result, nil
}

type documentServiceFixture struct {
	svc     *DocumentService
	docs    *fakeDocumentRepo
	history *fakeHistoryRepo
	bus     *eventbus.Bus

	mu        sync.Mutex
	published []eventbus.Event
}

func newDocumentServiceFixture(t *testing.T) *documentServiceFixture {
	t.Helper()
	f := &documentServiceFixture{
		docs:    newFakeDocumentRepo(),
		history: &fakeHistoryRepo{},
		bus:     eventbus.New(zap.NewNop()),
	}
	record := func(ctx context.Context, e eventbus.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.published = append(f.published, e)
		return nil
	}
	f.bus.Subscribe(events.DocumentCreatedEventName, record)
	f.bus.Subscribe(events.DocumentStatusChangedEventName, record)
	f.bus.Subscribe(events.DocumentConvertedEventName, record)

	svc := NewDocumentService(fakeTxManager{}, f.docs, f.history, f.bus, zap.NewNop()).(*DocumentService)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func (f *documentServiceFixture) publishedEvents() []eventbus.Event {
	f.bus.Wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]eventbus.Event(nil), f.published...)
}

func ctxWithPermissions(userID uint64, permissions ...string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserPermissionsMapKey, authz.PermissionsToMap(permissions))
}

func adminCtx() context.Context {
	return ctxWithPermissions(1, authz.Superuser)
}

func TestCreateDocument_InitialStatusAndTotals(t *testing.T) {
	f := newDocumentServiceFixture(t)
	ctx := ctxWithPermissions(7, authz.InvoicesCreate)

	due := "2024-07-15"
	doc, err := f.svc.CreateDocument(ctx, workflow.DocumentTypeInvoice, dto.CreateDocumentDTO{
		CustomerName: "  ACME  ",
		Currency:     "eur",
		DueDate:      &due,
		Lines: []dto.DocumentLineInputDTO{
			{Description: "Widget", Quantity: 2, UnitPrice: 1500, TaxRate: 20},
			{Description: "Service", Quantity: 0.5, UnitPrice: 999, TaxRate: 0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", doc.Status)
	assert.Equal(t, "INV-000001", doc.Number)
	assert.Equal(t, "ACME", doc.CustomerName)
	assert.Equal(t, "EUR", doc.Currency)
	assert.Equal(t, "2024-06-15", doc.IssueDate)
	assert.Equal(t, int64(3500), doc.Subtotal)
	assert.Equal(t, int64(600), doc.TaxTotal)
	assert.Equal(t, int64(4100), doc.GrandTotal)
	assert.Equal(t, uint64(7), doc.CreatedBy)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, 2, doc.Lines[1].LineNo)

	require.Len(t, f.history.events, 1)
	assert.Equal(t, constants.HistoryEventCreate, f.history.events[0].EventType)
	assert.Equal(t, "pending", f.history.events[0].NewValue.String)

	published := f.publishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.DocumentCreatedEventName, published[0].Name())
}

func TestCreateDocument_DefaultsAndValidation(t *testing.T) {
	f := newDocumentServiceFixture(t)
	ctx := adminCtx()
	lines := []dto.DocumentLineInputDTO{{Description: "Widget", Quantity: 1, UnitPrice: 100}}

	doc, err := f.svc.CreateDocument(ctx, workflow.DocumentTypeQuotation, dto.CreateDocumentDTO{CustomerName: "ACME", Lines: lines})
	require.NoError(t, err)
	assert.Equal(t, "draft", doc.Status)
	assert.Equal(t, constants.DefaultCurrency, doc.Currency)

	_, err = f.svc.CreateDocument(ctx, workflow.DocumentTypeQuotation, dto.CreateDocumentDTO{CustomerName: "ACME"})
	assert.ErrorIs(t, err, apperrors.ErrEmptyDocumentLines)

	_, err = f.svc.CreateDocument(ctx, workflow.DocumentTypeDeliveryNote, dto.CreateDocumentDTO{CustomerName: "ACME", Lines: lines})
	var inputErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)

	due := "2024-01-01"
	_, err = f.svc.CreateDocument(ctx, workflow.DocumentTypeInvoice, dto.CreateDocumentDTO{
		CustomerName: "ACME", IssueDate: "2024-02-01", DueDate: &due, Lines: lines,
	})
	assert.ErrorAs(t, err, &inputErr)

	_, err = f.svc.CreateDocument(ctx, workflow.DocumentType("purchase_order"), dto.CreateDocumentDTO{CustomerName: "ACME", Lines: lines})
	assert.ErrorIs(t, err, apperrors.ErrUnknownDocumentType)
}

func TestCreateDocument_Forbidden(t *testing.T) {
	f := newDocumentServiceFixture(t)
	ctx := ctxWithPermissions(7, authz.QuotationsCreate)

	_, err := f.svc.CreateDocument(ctx, workflow.DocumentTypeInvoice, dto.CreateDocumentDTO{
		CustomerName: "ACME",
		Lines:        []dto.DocumentLineInputDTO{{Description: "Widget", Quantity: 1}},
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.CreateDocument(context.Background(), workflow.DocumentTypeInvoice, dto.CreateDocumentDTO{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Empty(t, f.docs.docs)
}

func TestUpdateDocumentStatus_FollowsTransitionTable(t *testing.T) {
	f := newDocumentServiceFixture(t)
	ctx := ctxWithPermissions(3, authz.QuotationsUpdateStatus)
	q := f.docs.seed(workflow.DocumentTypeQuotation, workflow.StatusDraft)

	_, err := f.svc.UpdateDocumentStatus(ctx, workflow.DocumentTypeQuotation, q.ID, dto.UpdateDocumentStatusDTO{Status: "accepted"})
	var transitionErr *apperrors.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "draft", transitionErr.From)
	assert.Equal(t, "accepted", transitionErr.To)
	assert.Empty(t, f.history.events)

	doc, err := f.svc.UpdateDocumentStatus(ctx, workflow.DocumentTypeQuotation, q.ID, dto.UpdateDocumentStatusDTO{Status: "sent", Comment: " отправлено "})
	require.NoError(t, err)
	assert.Equal(t, "sent", doc.Status)

	require.Len(t, f.history.events, 1)
	h := f.history.events[0]
	assert.Equal(t, constants.HistoryEventStatusChange, h.EventType)
	assert.Equal(t, "draft", h.OldValue.String)
	assert.Equal(t, "sent", h.NewValue.String)
	assert.Equal(t, "отправлено", h.Comment.String)
	assert.Equal(t, uint64(3), h.UserID)

	published := f.publishedEvents()
	require.Len(t, published, 1)
	changed, ok := published[0].(events.DocumentStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, workflow.StatusDraft, changed.OldStatus)
	assert.Equal(t, workflow.StatusSent, changed.NewStatus)
}

func TestUpdateDocumentStatus_TerminalAndMissing(t *testing.T) {
	f := newDocumentServiceFixture(t)
	ctx := adminCtx()
	so := f.docs.seed(workflow.DocumentTypeSalesOrder, workflow.StatusCancelled)

	_, err := f.svc.UpdateDocumentStatus(ctx, workflow.DocumentTypeSalesOrder, so.ID, dto.UpdateDocumentStatusDTO{Status: "confirmed"})
	var transitionErr *apperrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)

	_, err = f.svc.UpdateDocumentStatus(ctx, workflow.DocumentTypeInvoice, so.ID, dto.UpdateDocumentStatusDTO{Status: "paid"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateDocumentStatus_UnknownTargetStatus(t *testing.T) {
	f := newDocumentServiceFixture(t)
	inv := f.docs.seed(workflow.DocumentTypeInvoice, workflow.StatusPending)

	for _, target := range []string{"archived", "confirmed", "draft"} {
		_, err := f.svc.UpdateDocumentStatus(adminCtx(), workflow.DocumentTypeInvoice, inv.ID, dto.UpdateDocumentStatusDTO{Status: target})
		var transitionErr *apperrors.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, target)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Equal(t, "pending", transitionErr.From)
		assert.Equal(t, target, transitionErr.To)
	}
	assert.Equal(t, workflow.StatusPending, f.docs.docs[inv.ID].Status)
	assert.Empty(t, f.history.events)
	assert.Empty(t, f.publishedEvents())
}

func TestUpdateDocumentStatus_PaidSetsPaidAt(t *testing.T) {
	f := newDocumentServiceFixture(t)
	inv := f.docs.seed(workflow.DocumentTypeInvoice, workflow.StatusOverdue)

	doc, err := f.svc.UpdateDocumentStatus(adminCtx(), workflow.DocumentTypeInvoice, inv.ID, dto.UpdateDocumentStatusDTO{Status: "paid"})
	require.NoError(t, err)

	assert.True(t, doc.PaidAt.Valid)
	require.NotNil(t, f.docs.docs[inv.ID].PaidAt)
	assert.True(t, f.svc.now().Equal(*f.docs.docs[inv.ID].PaidAt))
}

func TestConvertQuotationToSalesOrder(t *testing.T) {
	f := newDocumentServiceFixture(t)
	ctx := ctxWithPermissions(5, authz.SalesOrdersCreate)
	q := f.docs.seed(workflow.DocumentTypeQuotation, workflow.StatusAccepted)

	so, err := f.svc.ConvertQuotationToSalesOrder(ctx, q.ID)
	require.NoError(t, err)

	assert.Equal(t, workflow.DocumentTypeSalesOrder.String(), so.DocumentType)
	assert.Equal(t, "draft", so.Status)
	assert.Equal(t, q.ID, so.RelatedDocumentID.Uint64)
	assert.Equal(t, q.GrandTotal, so.GrandTotal)
	require.Len(t, so.Lines, 1)
	assert.Equal(t, "Widget", so.Lines[0].Description)
	assert.Equal(t, workflow.StatusAccepted, f.docs.docs[q.ID].Status, "статус источника не меняется")

	require.Len(t, f.history.events, 2)
	assert.Equal(t, constants.HistoryEventConversion, f.history.events[0].EventType)
	assert.Equal(t, q.ID, f.history.events[0].DocumentID)
	assert.Equal(t, constants.HistoryEventCreate, f.history.events[1].EventType)
	assert.Equal(t, so.ID, f.history.events[1].DocumentID)
	assert.Equal(t, *f.history.events[0].TxID, *f.history.events[1].TxID)

	published := f.publishedEvents()
	require.Len(t, published, 1)
	converted, ok := published[0].(events.DocumentConvertedEvent)
	require.True(t, ok)
	assert.Equal(t, workflow.ActionConvertToSalesOrder, converted.Action)
	assert.Equal(t, so.ID, converted.TargetID)
}

func TestConvertQuotation_RequiresAcceptedStatus(t *testing.T) {
	f := newDocumentServiceFixture(t)
	for _, status := range []workflow.Status{workflow.StatusDraft, workflow.StatusSent, workflow.StatusRejected, workflow.StatusExpired} {
		q := f.docs.seed(workflow.DocumentTypeQuotation, status)

		_, err := f.svc.ConvertQuotationToSalesOrder(adminCtx(), q.ID)
		var transitionErr *apperrors.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, status.String())
		assert.Equal(t, status.String(), transitionErr.From)
		assert.Equal(t, workflow.ActionConvertToSalesOrder.String(), transitionErr.Action)
		assert.Empty(t, transitionErr.To)
	}
	assert.Empty(t, f.history.events)
}

func TestConvert_DuplicateIsConflict(t *testing.T) {
	f := newDocumentServiceFixture(t)
	so := f.docs.seed(workflow.DocumentTypeSalesOrder, workflow.StatusConfirmed)

	_, err := f.svc.ConvertSalesOrderToInvoice(adminCtx(), so.ID)
	require.NoError(t, err)

	_, err = f.svc.ConvertSalesOrderToInvoice(adminCtx(), so.ID)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateDeliveryNoteFromSalesOrder(t *testing.T) {
	f := newDocumentServiceFixture(t)
	so := f.docs.seed(workflow.DocumentTypeSalesOrder, workflow.StatusConfirmed)
	ctx := ctxWithPermissions(9, authz.DeliveryNotesCreate)

	dn, err := f.svc.CreateDeliveryNoteFromSalesOrder(ctx, so.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.DocumentTypeDeliveryNote.String(), dn.DocumentType)
	assert.Equal(t, "draft", dn.Status)
	assert.Equal(t, so.ID, dn.RelatedDocumentID.Uint64)

	// счёт и накладная по одному заказу не мешают друг другу
	inv, err := f.svc.ConvertSalesOrderToInvoice(adminCtx(), so.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", inv.Status)

	_, err = f.svc.CreateDeliveryNoteFromSalesOrder(ctxWithPermissions(9, authz.InvoicesCreate), so.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestConvertSalesOrder_RequiresConfirmed(t *testing.T) {
	f := newDocumentServiceFixture(t)
	so := f.docs.seed(workflow.DocumentTypeSalesOrder, workflow.StatusDraft)

	_, err := f.svc.ConvertSalesOrderToInvoice(adminCtx(), so.ID)
	var transitionErr *apperrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)

	_, err = f.svc.CreateDeliveryNoteFromSalesOrder(adminCtx(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetDocumentActions_FilteredByPermission(t *testing.T) {
	f := newDocumentServiceFixture(t)
	so := f.docs.seed(workflow.DocumentTypeSalesOrder, workflow.StatusConfirmed)

	all, err := f.svc.GetDocumentActions(adminCtx(), workflow.DocumentTypeSalesOrder, so.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", all.Status)
	assert.True(t, all.Terminal)
	assert.Empty(t, all.AllowedNextStatuses)
	codes := make([]string, 0, len(all.Actions))
	for _, a := range all.Actions {
		codes = append(codes, a.Code)
		assert.NotEmpty(t, a.Label)
	}
	assert.ElementsMatch(t, []string{"create_invoice", "create_delivery_note"}, codes)

	limited, err := f.svc.GetDocumentActions(
		ctxWithPermissions(2, authz.SalesOrdersView, authz.InvoicesCreate),
		workflow.DocumentTypeSalesOrder, so.ID,
	)
	require.NoError(t, err)
	assert.Equal(t, all.AllowedNextStatuses, limited.AllowedNextStatuses)
	require.Len(t, limited.Actions, 1)
	assert.Equal(t, "create_invoice", limited.Actions[0].Code)
	assert.Equal(t, authz.InvoicesCreate, limited.Actions[0].Permission)
}

func TestGetDocumentActions_Terminal(t *testing.T) {
	f := newDocumentServiceFixture(t)
	inv := f.docs.seed(workflow.DocumentTypeInvoice, workflow.StatusPaid)

	res, err := f.svc.GetDocumentActions(adminCtx(), workflow.DocumentTypeInvoice, inv.ID)
	require.NoError(t, err)
	assert.True(t, res.Terminal)
	assert.Empty(t, res.AllowedNextStatuses)
	assert.Empty(t, res.Actions)
}

func TestGetDocumentHistory(t *testing.T) {
	f := newDocumentServiceFixture(t)
	q := f.docs.seed(workflow.DocumentTypeQuotation, workflow.StatusDraft)
	_, err := f.svc.UpdateDocumentStatus(adminCtx(), workflow.DocumentTypeQuotation, q.ID, dto.UpdateDocumentStatusDTO{Status: "sent"})
	require.NoError(t, err)

	history, err := f.svc.GetDocumentHistory(ctxWithPermissions(4, authz.QuotationsView), workflow.DocumentTypeQuotation, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "sent", history[0].NewValue.String)
	assert.True(t, history[0].TxID.Valid)

	_, err = f.svc.GetDocumentHistory(ctxWithPermissions(4, authz.InvoicesView), workflow.DocumentTypeQuotation, q.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetDocuments_StatusFilterValidation(t *testing.T) {
	f := newDocumentServiceFixture(t)
	f.docs.seed(workflow.DocumentTypeInvoice, workflow.StatusPending)

	docs, total, err := f.svc.GetDocuments(adminCtx(), workflow.DocumentTypeInvoice, types.Filter{
		Filter: map[string]interface{}{"status": "pending,overdue"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Len(t, docs, 1)

	_, _, err = f.svc.GetDocuments(adminCtx(), workflow.DocumentTypeInvoice, types.Filter{
		Filter: map[string]interface{}{"status": "accepted"},
	})
	var inputErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestBuildDocumentFilter(t *testing.T) {
	filter, err := buildDocumentFilter(workflow.DocumentTypeInvoice, types.Filter{
		Search:         "acme",
		Limit:          20,
		Offset:         40,
		WithPagination: true,
		Filter: map[string]interface{}{
			"status":              "sent, overdue",
			"date_from":           "2024-01-01",
			"date_to":             "2024-01-31",
			"related_document_id": "12",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []workflow.Status{workflow.StatusSent, workflow.StatusOverdue}, filter.Statuses)
	assert.Equal(t, uint64(20), filter.Limit)
	assert.Equal(t, uint64(40), filter.Offset)
	require.NotNil(t, filter.RelatedID)
	assert.Equal(t, uint64(12), *filter.RelatedID)

	_, err = buildDocumentFilter(workflow.DocumentTypeInvoice, types.Filter{
		Filter: map[string]interface{}{"date_from": "2024-02-01", "date_to": "2024-01-01"},
	})
	var inputErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestGetTransitionRules(t *testing.T) {
	f := newDocumentServiceFixture(t)

	rules, err := f.svc.GetTransitionRules(ctxWithPermissions(1, authz.DocumentsView))
	require.NoError(t, err)
	assert.NotEmpty(t, rules)

	_, err = f.svc.GetTransitionRules(ctxWithPermissions(1, authz.InvoicesView))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
