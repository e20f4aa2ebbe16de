package seeders

import (
	"context"
	"fmt"

	"erp-system/internal/authz"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// true - обновить описание, если право с таким name уже есть. false - пропустить.
const updateIfExistsPermissions = true

func seedPermissions(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Наполнение таблицы 'permissions'...")

	query := `INSERT INTO permissions (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	if updateIfExistsPermissions {
		query = `INSERT INTO permissions (name, description) VALUES ($1, $2)
				 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()`
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range authz.AllPermissions {
		if _, err := tx.Exec(ctx, query, p.Name, p.Description); err != nil {
			return fmt.Errorf("право '%s': %w", p.Name, err)
		}
	}
	return tx.Commit(ctx)
}
