package repositories

import (
	"context"
	"fmt"

	"erp-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DocumentHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, event *entities.DocumentHistory) error
	FindByDocumentID(ctx context.Context, documentID uint64) ([]entities.DocumentHistory, error)
}

type DocumentHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDocumentHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) DocumentHistoryRepositoryInterface {
	return &DocumentHistoryRepository{storage: storage, logger: logger}
}

func (r *DocumentHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, event *entities.DocumentHistory) error {
	query, args, err := psql.Insert("document_history").
		Columns("document_id", "user_id", "event_type", "old_value", "new_value", "comment", "tx_id").
		Values(event.DocumentID, event.UserID, event.EventType, event.OldValue, event.NewValue, event.Comment, event.TxID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("ошибка записи в 'document_history': %w", err)
	}
	return nil
}

// FindByDocumentID возвращает журнал в хронологическом порядке.
func (r *DocumentHistoryRepository) FindByDocumentID(ctx context.Context, documentID uint64) ([]entities.DocumentHistory, error) {
	query := `
		SELECT h.id, h.document_id, h.user_id, h.event_type, h.old_value, h.new_value, h.comment, h.tx_id, h.created_at, u.fio
		FROM document_history h
		LEFT JOIN users u ON u.id = h.user_id
		WHERE h.document_id = $1
		ORDER BY h.created_at ASC, h.id ASC`
	rows, err := r.storage.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории документа: %w", err)
	}
	defer rows.Close()

	history := make([]entities.DocumentHistory, 0)
	for rows.Next() {
		var h entities.DocumentHistory
		if err := rows.Scan(&h.ID, &h.DocumentID, &h.UserID, &h.EventType, &h.OldValue, &h.NewValue,
			&h.Comment, &h.TxID, &h.CreatedAt, &h.UserFio); err != nil {
			return nil, fmt.Errorf("ошибка сканирования истории документа: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
