package seeders

import (
	"context"
	"fmt"
	"strings"

	"erp-system/pkg/config"
	"erp-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// seedAdmin создаёт администратора из конфигурации, если пользователя с таким email ещё нет.
func seedAdmin(ctx context.Context, db *pgxpool.Pool, cfg config.SeederConfig, logger *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("SEED_ADMIN_EMAIL и SEED_ADMIN_PASSWORD должны быть заданы")
	}
	logger.Info("Создание администратора...", zap.String("email", email))

	var exists bool
	if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		logger.Info("Администратор уже существует, пропускаем")
		return nil
	}

	var roleID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", RoleAdmin).Scan(&roleID); err != nil {
		return fmt.Errorf("не найдена роль '%s': %w", RoleAdmin, err)
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (fio, email, password, role_id) VALUES ($1, $2, $3, $4)`,
		"Администратор", email, hashedPassword, roleID,
	)
	return err
}
