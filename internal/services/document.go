package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"erp-system/internal/authz"
	"erp-system/internal/dto"
	"erp-system/internal/entities"
	"erp-system/internal/events"
	"erp-system/internal/repositories"
	"erp-system/internal/workflow"
	"erp-system/pkg/constants"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/eventbus"
	"erp-system/pkg/types"
	"erp-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DocumentServiceInterface interface {
	GetDocuments(ctx context.Context, documentType workflow.DocumentType, filter types.Filter) ([]dto.DocumentDTO, uint64, error)
	FindDocument(ctx context.Context, documentType workflow.DocumentType, id uint64) (*dto.DocumentDTO, error)
	CreateDocument(ctx context.Context, documentType workflow.DocumentType, payload dto.CreateDocumentDTO) (*dto.DocumentDTO, error)
	UpdateDocumentStatus(ctx context.Context, documentType workflow.DocumentType, id uint64, payload dto.UpdateDocumentStatusDTO) (*dto.DocumentDTO, error)

	ConvertQuotationToSalesOrder(ctx context.Context, quotationID uint64) (*dto.DocumentDTO, error)
	ConvertSalesOrderToInvoice(ctx context.Context, salesOrderID uint64) (*dto.DocumentDTO, error)
	CreateDeliveryNoteFromSalesOrder(ctx context.Context, salesOrderID uint64) (*dto.DocumentDTO, error)

	GetDocumentActions(ctx context.Context, documentType workflow.DocumentType, id uint64) (*dto.DocumentActionsDTO, error)
	GetDocumentHistory(ctx context.Context, documentType workflow.DocumentType, id uint64) ([]dto.DocumentHistoryDTO, error)
	GetTransitionRules(ctx context.Context) ([]workflow.TransitionRule, error)
}

type DocumentService struct {
	*BaseService
	txManager   repositories.TxManagerInterface
	docRepo     repositories.DocumentRepositoryInterface
	historyRepo repositories.DocumentHistoryRepositoryInterface
	eventBus    *eventbus.Bus
	logger      *zap.Logger
	now         func() time.Time
}

func NewDocumentService(
	txManager repositories.TxManagerInterface,
	docRepo repositories.DocumentRepositoryInterface,
	historyRepo repositories.DocumentHistoryRepositoryInterface,
	eventBus *eventbus.Bus,
	logger *zap.Logger,
) DocumentServiceInterface {
	return &DocumentService{
		BaseService: NewBaseService(nil, logger),
		txManager:   txManager,
		docRepo:     docRepo,
		historyRepo: historyRepo,
		eventBus:    eventBus,
		logger:      logger,
		now:         time.Now,
	}
}

var actionLabels = map[workflow.Action]string{
	workflow.ActionConvertToSalesOrder: "Создать заказ",
	workflow.ActionCreateInvoice:       "Выставить счёт",
	workflow.ActionCreateDeliveryNote:  "Создать накладную",
	workflow.ActionUpdateStatus:        "Изменить статус",
}

func (s *DocumentService) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *DocumentService) GetDocuments(ctx context.Context, documentType workflow.DocumentType, filter types.Filter) ([]dto.DocumentDTO, uint64, error) {
	if !documentType.IsValid() {
		return nil, 0, apperrors.ErrUnknownDocumentType
	}
	if _, err := s.CheckPermission(ctx, authz.DocumentPermission(documentType, authz.VerbView)); err != nil {
		return nil, 0, err
	}

	docFilter, err := buildDocumentFilter(documentType, filter)
	if err != nil {
		return nil, 0, err
	}

	docs, total, err := s.docRepo.GetDocuments(ctx, docFilter)
	if err != nil {
		s.logger.Error("Ошибка получения списка документов", zap.String("type", documentType.String()), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.DocumentDTO, 0, len(docs))
	for i := range docs {
		result = append(result, documentToDTO(&docs[i]))
	}
	return result, total, nil
}

// buildDocumentFilter переводит параметры запроса в фильтр репозитория.
// filter[status] принимает список через запятую, допустимы только статусы данного типа.
func buildDocumentFilter(documentType workflow.DocumentType, filter types.Filter) (entities.DocumentFilter, error) {
	result := entities.DocumentFilter{
		DocumentType: documentType,
		Search:       filter.Search,
		Sort:         filter.Sort,
	}
	if filter.WithPagination && filter.Limit > 0 {
		result.Limit = uint64(filter.Limit)
		result.Offset = uint64(filter.Offset)
	}

	if raw, ok := filter.Filter["status"]; ok {
		for _, part := range strings.Split(fmt.Sprint(raw), ",") {
			status := workflow.Status(strings.TrimSpace(part))
			if status == "" {
				continue
			}
			if !isKnownStatusForType(documentType, status) {
				return result, apperrors.NewInvalidInputError("статус '%s' не существует для документа типа '%s'", status, documentType)
			}
			result.Statuses = append(result.Statuses, status)
		}
	}
	if raw, ok := filter.Filter["date_from"]; ok {
		d, err := utils.ParseDate(fmt.Sprint(raw))
		if err != nil {
			return result, err
		}
		result.DateFrom = &d
	}
	if raw, ok := filter.Filter["date_to"]; ok {
		d, err := utils.ParseDate(fmt.Sprint(raw))
		if err != nil {
			return result, err
		}
		result.DateTo = &d
	}
	if result.DateFrom != nil && result.DateTo != nil && result.DateTo.Before(*result.DateFrom) {
		return result, apperrors.NewInvalidInputError("date_to не может быть раньше date_from")
	}
	if raw, ok := filter.Filter["related_document_id"]; ok {
		id, err := strconv.ParseUint(fmt.Sprint(raw), 10, 64)
		if err != nil {
			return result, apperrors.NewInvalidInputError("неверный related_document_id")
		}
		result.RelatedID = &id
	}
	return result, nil
}

func isKnownStatusForType(documentType workflow.DocumentType, status workflow.Status) bool {
	for _, s := range workflow.KnownStatuses(documentType) {
		if s == status {
			return true
		}
	}
	return false
}

func (s *DocumentService) FindDocument(ctx context.Context, documentType workflow.DocumentType, id uint64) (*dto.DocumentDTO, error) {
	if !documentType.IsValid() {
		return nil, apperrors.ErrUnknownDocumentType
	}
	if _, err := s.CheckPermission(ctx, authz.DocumentPermission(documentType, authz.VerbView)); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.FindDocument(ctx, documentType, id)
	if err != nil {
		return nil, err
	}
	result := documentToDTO(doc)
	return &result, nil
}

// CreateDocument создаёт документ в начальном статусе его типа.
// Накладные напрямую не создаются, только из подтверждённого заказа.
func (s *DocumentService) CreateDocument(ctx context.Context, documentType workflow.DocumentType, payload dto.CreateDocumentDTO) (*dto.DocumentDTO, error) {
	if !documentType.IsValid() {
		return nil, apperrors.ErrUnknownDocumentType
	}
	if documentType == workflow.DocumentTypeDeliveryNote {
		return nil, apperrors.NewInvalidInputError("накладная создаётся только из подтверждённого заказа")
	}
	authCtx, err := s.CheckPermission(ctx, authz.DocumentPermission(documentType, authz.VerbCreate))
	if err != nil {
		return nil, err
	}

	doc, err := s.documentFromPayload(documentType, payload)
	if err != nil {
		return nil, err
	}
	doc.CreatedBy = authCtx.ActorID

	txID := uuid.New()
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.docRepo.CreateInTx(ctx, tx, doc); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.DocumentHistory{
			DocumentID: doc.ID,
			UserID:     authCtx.ActorID,
			EventType:  constants.HistoryEventCreate,
			NewValue:   nullString(doc.Status.String()),
			TxID:       &txID,
		})
	})
	if err != nil {
		s.logger.Error("Ошибка создания документа", zap.String("type", documentType.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Документ создан",
		zap.String("number", doc.Number),
		zap.Uint64("id", doc.ID),
		zap.Uint64("userID", authCtx.ActorID),
	)
	s.eventBus.Publish(ctx, events.DocumentCreatedEvent{
		TxID:         txID,
		ActorID:      authCtx.ActorID,
		DocumentID:   doc.ID,
		DocumentType: doc.DocumentType,
		Number:       doc.Number,
		Status:       doc.Status,
	})

	result := documentToDTO(doc)
	return &result, nil
}

func (s *DocumentService) documentFromPayload(documentType workflow.DocumentType, payload dto.CreateDocumentDTO) (*entities.Document, error) {
	if len(payload.Lines) == 0 {
		return nil, apperrors.ErrEmptyDocumentLines
	}
	status, ok := workflow.InitialStatus(documentType)
	if !ok {
		return nil, apperrors.ErrUnknownDocumentType
	}

	issueDate := s.today()
	if strings.TrimSpace(payload.IssueDate) != "" {
		d, err := utils.ParseDate(payload.IssueDate)
		if err != nil {
			return nil, err
		}
		issueDate = d
	}
	dueDate, err := utils.ParseOptionalDate(payload.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate != nil && dueDate.Before(issueDate) {
		return nil, apperrors.NewInvalidInputError("срок оплаты не может быть раньше даты документа")
	}

	currency := strings.ToUpper(strings.TrimSpace(payload.Currency))
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	doc := &entities.Document{
		DocumentType:  documentType,
		Status:        status,
		CustomerName:  strings.TrimSpace(payload.CustomerName),
		CustomerEmail: trimmedOrNil(payload.CustomerEmail),
		Currency:      currency,
		Notes:         trimmedOrNil(payload.Notes),
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Lines:         make([]entities.DocumentLine, 0, len(payload.Lines)),
	}
	for _, l := range payload.Lines {
		doc.Lines = append(doc.Lines, entities.DocumentLine{
			ItemCode:    trimmedOrNil(l.ItemCode),
			Description: strings.TrimSpace(l.Description),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
		})
	}
	doc.RecalculateTotals()
	return doc, nil
}

// UpdateDocumentStatus меняет статус по таблице переходов.
// Строка документа блокируется на время проверки и записи.
func (s *DocumentService) UpdateDocumentStatus(ctx context.Context, documentType workflow.DocumentType, id uint64, payload dto.UpdateDocumentStatusDTO) (*dto.DocumentDTO, error) {
	if !documentType.IsValid() {
		return nil, apperrors.ErrUnknownDocumentType
	}
	authCtx, err := s.CheckPermission(ctx, authz.DocumentPermission(documentType, authz.VerbUpdateStatus))
	if err != nil {
		return nil, err
	}

	newStatus := workflow.Status(strings.TrimSpace(payload.Status))
	comment := strings.TrimSpace(payload.Comment)
	txID := uuid.New()

	var doc *entities.Document
	var oldStatus workflow.Status
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		doc, err = s.docRepo.FindDocumentForUpdate(ctx, tx, documentType, id)
		if err != nil {
			return err
		}
		oldStatus = doc.Status

		if err := workflow.ValidateTransition(documentType, oldStatus, newStatus); err != nil {
			return err
		}

		var paidAt *time.Time
		if newStatus == workflow.StatusPaid {
			t := s.now()
			paidAt = &t
		}
		if err := s.docRepo.UpdateStatusInTx(ctx, tx, doc.ID, newStatus, paidAt); err != nil {
			return err
		}
		doc.Status = newStatus
		if paidAt != nil {
			doc.PaidAt = paidAt
		}

		return s.historyRepo.CreateInTx(ctx, tx, &entities.DocumentHistory{
			DocumentID: doc.ID,
			UserID:     authCtx.ActorID,
			EventType:  constants.HistoryEventStatusChange,
			OldValue:   nullString(oldStatus.String()),
			NewValue:   nullString(newStatus.String()),
			Comment:    nullString(comment),
			TxID:       &txID,
		})
	})
	if err != nil {
		var transitionErr *apperrors.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			s.logger.Warn("Недопустимый переход статуса",
				zap.Uint64("id", id),
				zap.String("from", transitionErr.From),
				zap.String("to", transitionErr.To),
			)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка смены статуса документа", zap.Uint64("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Статус документа изменён",
		zap.String("number", doc.Number),
		zap.String("from", oldStatus.String()),
		zap.String("to", newStatus.String()),
		zap.Uint64("userID", authCtx.ActorID),
	)
	s.eventBus.Publish(ctx, events.DocumentStatusChangedEvent{
		TxID:         txID,
		ActorID:      authCtx.ActorID,
		DocumentID:   doc.ID,
		DocumentType: documentType,
		Number:       doc.Number,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		Comment:      comment,
	})

	result := documentToDTO(doc)
	return &result, nil
}

func (s *DocumentService) ConvertQuotationToSalesOrder(ctx context.Context, quotationID uint64) (*dto.DocumentDTO, error) {
	return s.convert(ctx, workflow.DocumentTypeQuotation, quotationID, workflow.ActionConvertToSalesOrder)
}

func (s *DocumentService) ConvertSalesOrderToInvoice(ctx context.Context, salesOrderID uint64) (*dto.DocumentDTO, error) {
	return s.convert(ctx, workflow.DocumentTypeSalesOrder, salesOrderID, workflow.ActionCreateInvoice)
}

func (s *DocumentService) CreateDeliveryNoteFromSalesOrder(ctx context.Context, salesOrderID uint64) (*dto.DocumentDTO, error) {
	return s.convert(ctx, workflow.DocumentTypeSalesOrder, salesOrderID, workflow.ActionCreateDeliveryNote)
}

// convert создаёт связанный документ из источника. Действие должно быть доступно
// источнику в его текущем статусе. Статус источника не меняется.
func (s *DocumentService) convert(ctx context.Context, sourceType workflow.DocumentType, sourceID uint64, action workflow.Action) (*dto.DocumentDTO, error) {
	_, targetType, ok := workflow.ConversionTarget(action)
	if !ok {
		return nil, apperrors.ErrBadRequest
	}
	authCtx, err := s.CheckPermission(ctx, authz.ActionPermission(sourceType, action))
	if err != nil {
		return nil, err
	}
	targetStatus, _ := workflow.InitialStatus(targetType)
	txID := uuid.New()

	var source, target *entities.Document
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		source, err = s.docRepo.FindDocumentForUpdate(ctx, tx, sourceType, sourceID)
		if err != nil {
			return err
		}
		if !workflow.HasAction(sourceType, source.Status, action) {
			return apperrors.NewUnavailableActionError(sourceType.String(), source.Status.String(), action.String())
		}

		target = &entities.Document{
			DocumentType:      targetType,
			Status:            targetStatus,
			CustomerName:      source.CustomerName,
			CustomerEmail:     source.CustomerEmail,
			Currency:          source.Currency,
			Notes:             source.Notes,
			IssueDate:         s.today(),
			DueDate:           source.DueDate,
			RelatedDocumentID: &source.ID,
			CreatedBy:         authCtx.ActorID,
			Lines:             source.CopyLines(),
		}
		target.RecalculateTotals()

		if err := s.docRepo.CreateInTx(ctx, tx, target); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.NewHttpError(
					http.StatusConflict,
					fmt.Sprintf("Документ типа '%s' уже создан из %s", targetType, source.Number),
					err,
					map[string]interface{}{"source_id": source.ID, "action": action},
				)
			}
			return err
		}

		if err := s.historyRepo.CreateInTx(ctx, tx, &entities.DocumentHistory{
			DocumentID: source.ID,
			UserID:     authCtx.ActorID,
			EventType:  constants.HistoryEventConversion,
			OldValue:   nullString(source.Number),
			NewValue:   nullString(target.Number),
			Comment:    nullString(action.String()),
			TxID:       &txID,
		}); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.DocumentHistory{
			DocumentID: target.ID,
			UserID:     authCtx.ActorID,
			EventType:  constants.HistoryEventCreate,
			OldValue:   nullString(source.Number),
			NewValue:   nullString(target.Status.String()),
			Comment:    nullString(action.String()),
			TxID:       &txID,
		})
	})
	if err != nil {
		var transitionErr *apperrors.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			s.logger.Warn("Конвертация недоступна в текущем статусе",
				zap.Uint64("sourceID", sourceID),
				zap.String("action", action.String()),
				zap.String("status", transitionErr.From),
			)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка конвертации документа",
				zap.Uint64("sourceID", sourceID),
				zap.String("action", action.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.logger.Info("Документ создан конвертацией",
		zap.String("source", source.Number),
		zap.String("target", target.Number),
		zap.String("action", action.String()),
		zap.Uint64("userID", authCtx.ActorID),
	)
	s.eventBus.Publish(ctx, events.DocumentConvertedEvent{
		TxID:         txID,
		ActorID:      authCtx.ActorID,
		Action:       action,
		SourceID:     source.ID,
		SourceType:   sourceType,
		SourceNumber: source.Number,
		TargetID:     target.ID,
		TargetType:   targetType,
		TargetNumber: target.Number,
	})

	result := documentToDTO(target)
	return &result, nil
}

// GetDocumentActions отдаёт допустимые статусы и действия для документа.
// Действия без нужного права у пользователя скрываются.
func (s *DocumentService) GetDocumentActions(ctx context.Context, documentType workflow.DocumentType, id uint64) (*dto.DocumentActionsDTO, error) {
	if !documentType.IsValid() {
		return nil, apperrors.ErrUnknownDocumentType
	}
	authCtx, err := s.CheckPermission(ctx, authz.DocumentPermission(documentType, authz.VerbView))
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.FindDocument(ctx, documentType, id)
	if err != nil {
		return nil, err
	}

	next := workflow.AllowedNextStatuses(documentType, doc.Status)
	nextNames := make([]string, 0, len(next))
	for _, st := range next {
		nextNames = append(nextNames, st.String())
	}

	visible := authz.FilterActions(documentType, workflow.ResolveActions(documentType, doc.Status), authCtx)
	actions := make([]dto.ActionDTO, 0, len(visible))
	for _, a := range visible {
		actions = append(actions, dto.ActionDTO{
			Code:       a.String(),
			Label:      actionLabels[a],
			Permission: authz.ActionPermission(documentType, a),
		})
	}

	return &dto.DocumentActionsDTO{
		DocumentID:          doc.ID,
		DocumentType:        documentType.String(),
		Status:              doc.Status.String(),
		Terminal:            len(next) == 0,
		AllowedNextStatuses: nextNames,
		Actions:             actions,
	}, nil
}

func (s *DocumentService) GetDocumentHistory(ctx context.Context, documentType workflow.DocumentType, id uint64) ([]dto.DocumentHistoryDTO, error) {
	if !documentType.IsValid() {
		return nil, apperrors.ErrUnknownDocumentType
	}
	if _, err := s.CheckPermission(ctx, authz.DocumentPermission(documentType, authz.VerbView)); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.FindDocument(ctx, documentType, id)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.FindByDocumentID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DocumentHistoryDTO, 0, len(history))
	for i := range history {
		result = append(result, historyToDTO(&history[i]))
	}
	return result, nil
}

func (s *DocumentService) GetTransitionRules(ctx context.Context) ([]workflow.TransitionRule, error) {
	if _, err := s.CheckPermission(ctx, authz.DocumentsView); err != nil {
		return nil, err
	}
	return workflow.Rules(), nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
