package seeders

import (
	"context"

	"erp-system/internal/authz"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	RoleAdmin        = "admin"
	RoleSalesManager = "sales_manager"
	RoleAccountant   = "accountant"
	RoleViewer       = "viewer"
)

type roleSeed struct {
	Name        string
	Description string
	Permissions []string
}

// rolesData - базовые роли и их права. Связи только добавляются, ручные правки в БД не затираются.
var rolesData = []roleSeed{
	{
		Name:        RoleAdmin,
		Description: "Администратор системы",
		Permissions: []string{authz.Superuser},
	},
	{
		Name:        RoleSalesManager,
		Description: "Менеджер по продажам: КП, заказы, накладные",
		Permissions: []string{
			authz.DocumentsView,
			authz.QuotationsView, authz.QuotationsCreate, authz.QuotationsUpdateStatus,
			authz.SalesOrdersView, authz.SalesOrdersCreate, authz.SalesOrdersUpdateStatus,
			authz.InvoicesView,
			authz.DeliveryNotesView, authz.DeliveryNotesCreate,
		},
	},
	{
		Name:        RoleAccountant,
		Description: "Бухгалтер: счета и отчёты",
		Permissions: []string{
			authz.DocumentsView,
			authz.SalesOrdersView,
			authz.InvoicesView, authz.InvoicesCreate, authz.InvoicesUpdateStatus,
			authz.ReportsView,
		},
	},
	{
		Name:        RoleViewer,
		Description: "Только просмотр",
		Permissions: []string{
			authz.DocumentsView,
			authz.QuotationsView,
			authz.SalesOrdersView,
			authz.InvoicesView,
			authz.DeliveryNotesView,
		},
	},
}

func seedRoles(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Наполнение таблицы 'roles'...")

	query := `INSERT INTO roles (name, description) VALUES ($1, $2)
			  ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()`
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, r := range rolesData {
		if _, err := tx.Exec(ctx, query, r.Name, r.Description); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
