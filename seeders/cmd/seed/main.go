package main

import (
	"context"
	"flag"
	"os"

	"erp-system/pkg/config"
	"erp-system/pkg/database/postgresql"
	"erp-system/pkg/logger"
	"erp-system/seeders"

	"go.uber.org/zap"
)

func main() {
	runCore := flag.Bool("core", false, "Наполнить справочник прав")
	runRoles := flag.Bool("roles", false, "Создать роли, связи с правами и администратора")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -core -roles)")
	flag.Parse()

	if !*runCore && !*runRoles && !*runAll {
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.New()
	appLogger := logger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths).Named("seed")
	defer func() { _ = appLogger.Sync() }()

	ctx := context.Background()
	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, appLogger)
	if err != nil {
		appLogger.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer pool.Close()

	// роли ссылаются на права, поэтому порядок важен
	if *runAll || *runCore {
		if err := seeders.SeedCoreDictionaries(ctx, pool, appLogger); err != nil {
			appLogger.Fatal("Ошибка наполнения справочников", zap.Error(err))
		}
	}
	if *runAll || *runRoles {
		if err := seeders.SeedRolesAndAdmin(ctx, pool, cfg, appLogger); err != nil {
			appLogger.Fatal("Ошибка настройки ролей", zap.Error(err))
		}
	}

	appLogger.Info("Сидирование завершено")
}
