package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"erp-system/internal/authz"
	"erp-system/internal/controllers"
	"erp-system/internal/services"
	"erp-system/internal/workflow"
	"erp-system/pkg/middleware"
)

// documentPaths - URL-сегмент каждого типа документа.
var documentPaths = []struct {
	documentType workflow.DocumentType
	path         string
	creatable    bool
}{
	{workflow.DocumentTypeQuotation, "/quotations", true},
	{workflow.DocumentTypeSalesOrder, "/sales-orders", true},
	{workflow.DocumentTypeInvoice, "/invoices", true},
	// накладная создаётся только из заказа
	{workflow.DocumentTypeDeliveryNote, "/delivery-notes", false},
}

func runDocumentRouter(
	secureGroup *echo.Group,
	documentService services.DocumentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	controllersByType := make(map[workflow.DocumentType]*controllers.DocumentController, len(documentPaths))

	for _, dp := range documentPaths {
		ctrl := controllers.NewDocumentController(dp.documentType, documentService, logger)
		controllersByType[dp.documentType] = ctrl

		view := authMW.AuthorizeAny(authz.DocumentPermission(dp.documentType, authz.VerbView))
		g := secureGroup.Group(dp.path)

		g.GET("", ctrl.GetDocuments, view)
		g.GET("/:id", ctrl.FindDocument, view)
		g.GET("/:id/actions", ctrl.GetDocumentActions, view)
		g.GET("/:id/history", ctrl.GetDocumentHistory, view)

		if dp.creatable {
			g.POST("", ctrl.CreateDocument, authMW.AuthorizeAny(authz.DocumentPermission(dp.documentType, authz.VerbCreate)))
			g.PUT("/:id/status", ctrl.UpdateDocumentStatus, authMW.AuthorizeAny(authz.DocumentPermission(dp.documentType, authz.VerbUpdateStatus)))
		}
	}

	quotations := controllersByType[workflow.DocumentTypeQuotation]
	salesOrders := controllersByType[workflow.DocumentTypeSalesOrder]

	secureGroup.POST("/quotations/:id/convert", quotations.ConvertQuotationToSalesOrder, authMW.AuthorizeAny(authz.SalesOrdersCreate))
	secureGroup.POST("/sales-orders/:id/invoice", salesOrders.ConvertSalesOrderToInvoice, authMW.AuthorizeAny(authz.InvoicesCreate))
	secureGroup.POST("/sales-orders/:id/delivery-note", salesOrders.CreateDeliveryNoteFromSalesOrder, authMW.AuthorizeAny(authz.DeliveryNotesCreate))
}
