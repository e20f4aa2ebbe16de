package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"erp-system/internal/authz"
	"erp-system/internal/controllers"
	"erp-system/internal/services"
	"erp-system/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/financial-summary", reportController.GetFinancialSummary, authMW.AuthorizeAny(authz.ReportsView))
}
