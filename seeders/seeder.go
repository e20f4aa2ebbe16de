package seeders

import (
	"context"

	"erp-system/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SeedCoreDictionaries наполняет справочник прав. Зависимостей не имеет.
func SeedCoreDictionaries(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Запуск наполнения базовых справочников...")

	if err := seedPermissions(ctx, db, logger); err != nil {
		return err
	}
	logger.Info("Наполнение базовых справочников завершено")
	return nil
}

// SeedRolesAndAdmin создаёт роли, их связи с правами и администратора.
func SeedRolesAndAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Запуск настройки ролей и администратора...")

	if err := seedRoles(ctx, db, logger); err != nil {
		return err
	}
	if err := seedRolePermissions(ctx, db, logger); err != nil {
		return err
	}
	if err := seedAdmin(ctx, db, cfg.Seeder, logger); err != nil {
		return err
	}

	logger.Info("Настройка ролей и администратора завершена")
	return nil
}
