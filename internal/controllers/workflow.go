package controllers

import (
	"net/http"

	"erp-system/internal/services"
	"erp-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorkflowController struct {
	documentService services.DocumentServiceInterface
	logger          *zap.Logger
}

func NewWorkflowController(documentService services.DocumentServiceInterface, logger *zap.Logger) *WorkflowController {
	return &WorkflowController{documentService: documentService, logger: logger}
}

// GetTransitions отдаёт таблицу переходов статусов для всех типов документов.
func (c *WorkflowController) GetTransitions(ctx echo.Context) error {
	rules, err := c.documentService.GetTransitionRules(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rules, "Таблица переходов получена", http.StatusOK)
}
