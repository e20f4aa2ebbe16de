package controllers

import (
	"context"
	"net/http"
	"strconv"

	"erp-system/internal/dto"
	"erp-system/internal/services"
	"erp-system/internal/workflow"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DocumentController обслуживает маршруты одного типа документа.
type DocumentController struct {
	documentType    workflow.DocumentType
	documentService services.DocumentServiceInterface
	logger          *zap.Logger
}

func NewDocumentController(
	documentType workflow.DocumentType,
	documentService services.DocumentServiceInterface,
	logger *zap.Logger,
) *DocumentController {
	return &DocumentController{
		documentType:    documentType,
		documentService: documentService,
		logger:          logger.With(zap.String("document_type", documentType.String())),
	}
}

func (c *DocumentController) parseID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID документа",
			err,
			map[string]interface{}{"param": ctx.Param("id")},
		)
	}
	return id, nil
}

func (c *DocumentController) GetDocuments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	docs, total, err := c.documentService.GetDocuments(reqCtx, c.documentType, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, docs, "Список документов успешно получен", http.StatusOK, total)
}

func (c *DocumentController) FindDocument(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	doc, err := c.documentService.FindDocument(reqCtx, c.documentType, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, doc, "Документ успешно найден", http.StatusOK)
}

func (c *DocumentController) CreateDocument(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateDocumentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	doc, err := c.documentService.CreateDocument(reqCtx, c.documentType, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, doc, "Документ успешно создан", http.StatusCreated)
}

func (c *DocumentController) UpdateDocumentStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDocumentStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	doc, err := c.documentService.UpdateDocumentStatus(reqCtx, c.documentType, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, doc, "Статус документа успешно изменён", http.StatusOK)
}

func (c *DocumentController) GetDocumentActions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.documentService.GetDocumentActions(reqCtx, c.documentType, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Действия документа получены", http.StatusOK)
}

func (c *DocumentController) GetDocumentHistory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.documentService.GetDocumentHistory(reqCtx, c.documentType, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "История документа получена", http.StatusOK)
}

// ConvertQuotationToSalesOrder: POST /quotations/:id/convert
func (c *DocumentController) ConvertQuotationToSalesOrder(ctx echo.Context) error {
	return c.convert(ctx, c.documentService.ConvertQuotationToSalesOrder, "Заказ создан из коммерческого предложения")
}

// ConvertSalesOrderToInvoice: POST /sales-orders/:id/invoice
func (c *DocumentController) ConvertSalesOrderToInvoice(ctx echo.Context) error {
	return c.convert(ctx, c.documentService.ConvertSalesOrderToInvoice, "Счёт выставлен по заказу")
}

// CreateDeliveryNoteFromSalesOrder: POST /sales-orders/:id/delivery-note
func (c *DocumentController) CreateDeliveryNoteFromSalesOrder(ctx echo.Context) error {
	return c.convert(ctx, c.documentService.CreateDeliveryNoteFromSalesOrder, "Накладная создана по заказу")
}

func (c *DocumentController) convert(
	ctx echo.Context,
	op func(ctx context.Context, id uint64) (*dto.DocumentDTO, error),
	message string,
) error {
	reqCtx := ctx.Request().Context()
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	doc, err := op(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, doc, message, http.StatusCreated)
}
