package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"erp-system/internal/authz"
	"erp-system/internal/controllers"
	"erp-system/internal/services"
	"erp-system/pkg/middleware"
)

func runWorkflowRouter(
	secureGroup *echo.Group,
	documentService services.DocumentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	ctrl := controllers.NewWorkflowController(documentService, logger)

	secureGroup.GET("/workflow/transitions", ctrl.GetTransitions, authMW.AuthorizeAny(authz.DocumentsView))
}
