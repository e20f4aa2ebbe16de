package main

import (
	"context"
	"flag"
	"log"

	"erp-system/migrations"
	"erp-system/pkg/config"
	"erp-system/pkg/database/postgresql"
	"erp-system/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	command := flag.String("cmd", "up", "goose command: up, down, status, reset")
	flag.Parse()

	cfg := config.New()
	appLogger := logger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths)
	defer func() { _ = appLogger.Sync() }()

	ctx := context.Background()
	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, appLogger)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := postgresql.RunMigrations(ctx, pool, migrations.FS, *command, appLogger); err != nil {
		appLogger.Fatal("Ошибка миграции", zap.Error(err))
	}
	appLogger.Info("Миграции выполнены", zap.String("cmd", *command))
}
