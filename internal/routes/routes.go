package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"erp-system/internal/listeners"
	"erp-system/internal/repositories"
	"erp-system/internal/services"
	"erp-system/pkg/config"
	"erp-system/pkg/eventbus"
	"erp-system/pkg/middleware"
	"erp-system/pkg/service"
)

type Loggers struct {
	Main     *zap.Logger
	Auth     *zap.Logger
	Document *zap.Logger
	Report   *zap.Logger
}

// Services - всё, что нужно маршрутам. Собирается в InitRouter, в тестах подменяется.
type Services struct {
	Auth        services.AuthServiceInterface
	Permissions services.AuthPermissionServiceInterface
	Document    services.DocumentServiceInterface
	Report      services.ReportServiceInterface
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	loggers *Loggers,
	bus *eventbus.Bus,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn, loggers.Auth)
	permissionRepo := repositories.NewPermissionRepository(dbConn, loggers.Auth)
	documentRepo := repositories.NewDocumentRepository(dbConn, loggers.Document)
	historyRepo := repositories.NewDocumentHistoryRepository(dbConn, loggers.Document)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	permissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, loggers.Auth, cfg.Cache.PermissionsTTL)
	svcs := Services{
		Auth:        services.NewAuthService(userRepo, cacheRepo, permissionService, jwtSvc, loggers.Auth, cfg.Auth),
		Permissions: permissionService,
		Document:    services.NewDocumentService(txManager, documentRepo, historyRepo, bus, loggers.Document),
		Report:      services.NewReportService(reportRepo, cacheRepo, cfg.Cache.ReportTTL, loggers.Report),
	}

	// --- 3. ПОДПИСЧИКИ СОБЫТИЙ ---
	listeners.NewReportCacheListener(svcs.Report, loggers.Report).Register(bus)
	listeners.NewAuditListener(loggers.Document).Register(bus)

	// --- 4. РОУТЕРЫ ---
	RegisterRoutes(e, svcs, jwtSvc, loggers)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

func RegisterRoutes(e *echo.Echo, svcs Services, jwtSvc service.JWTService, loggers *Loggers) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, svcs.Permissions, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, svcs.Auth, jwtSvc, loggers.Auth)
	runWorkflowRouter(secureGroup, svcs.Document, loggers.Document, authMW)
	runDocumentRouter(secureGroup, svcs.Document, loggers.Document, authMW)
	runReportRouter(secureGroup, svcs.Report, loggers.Report, authMW)
}
