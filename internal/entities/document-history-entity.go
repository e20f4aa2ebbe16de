package entities

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// DocumentHistory - запись журнала изменений документа.
// TxID связывает записи, сделанные в рамках одной операции.
type DocumentHistory struct {
	ID         uint64         `db:"id"`
	DocumentID uint64         `db:"document_id"`
	UserID     uint64         `db:"user_id"`
	EventType  string         `db:"event_type"`
	OldValue   sql.NullString `db:"old_value"`
	NewValue   sql.NullString `db:"new_value"`
	Comment    sql.NullString `db:"comment"`
	TxID       *uuid.UUID     `db:"tx_id"`
	CreatedAt  time.Time      `db:"created_at"`

	// UserFio заполняется только при чтении журнала.
	UserFio sql.NullString `db:"user_fio"`
}
