package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func seedRolePermissions(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Наполнение таблицы 'role_permissions'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `INSERT INTO role_permissions (role_id, permission_id)
			  SELECT r.id, p.id FROM roles r, permissions p
			  WHERE r.name = $1 AND p.name = ANY($2)
			  ON CONFLICT DO NOTHING`

	for _, r := range rolesData {
		tag, err := tx.Exec(ctx, query, r.Name, r.Permissions)
		if err != nil {
			return err
		}
		logger.Debug("Права роли добавлены", zap.String("role", r.Name), zap.Int64("added", tag.RowsAffected()))
	}
	return tx.Commit(ctx)
}
