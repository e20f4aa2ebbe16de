package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"erp-system/internal/entities"
	bd "erp-system/internal/infrastructure/bd"
	"erp-system/internal/workflow"
	apperrors "erp-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	documentTable  = "documents"
	documentFields = "id, document_type, number, status, customer_name, customer_email, currency, notes, " +
		"issue_date, due_date, related_document_id, subtotal, tax_total, grand_total, created_by, paid_at, created_at, updated_at"

	documentLineTable  = "document_lines"
	documentLineFields = "id, document_id, line_no, item_code, description, quantity, unit_price, tax_rate, line_total, tax_amount"

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type dbDocument struct {
	ID                uint64
	DocumentType      string
	Number            string
	Status            string
	CustomerName      string
	CustomerEmail     sql.NullString
	Currency          string
	Notes             sql.NullString
	IssueDate         time.Time
	DueDate           sql.NullTime
	RelatedDocumentID sql.NullInt64
	Subtotal          int64
	TaxTotal          int64
	GrandTotal        int64
	CreatedBy         uint64
	PaidAt            sql.NullTime
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (db *dbDocument) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.DocumentType, &db.Number, &db.Status, &db.CustomerName, &db.CustomerEmail,
		&db.Currency, &db.Notes, &db.IssueDate, &db.DueDate, &db.RelatedDocumentID,
		&db.Subtotal, &db.TaxTotal, &db.GrandTotal, &db.CreatedBy, &db.PaidAt, &db.CreatedAt, &db.UpdatedAt,
	}
}

func (db *dbDocument) ToEntity() *entities.Document {
	doc := &entities.Document{
		ID:           db.ID,
		DocumentType: workflow.DocumentType(db.DocumentType),
		Number:       db.Number,
		Status:       workflow.Status(db.Status),
		CustomerName: db.CustomerName,
		Currency:     db.Currency,
		IssueDate:    db.IssueDate,
		Subtotal:     db.Subtotal,
		TaxTotal:     db.TaxTotal,
		GrandTotal:   db.GrandTotal,
		CreatedBy:    db.CreatedBy,
	}
	if db.CustomerEmail.Valid {
		doc.CustomerEmail = &db.CustomerEmail.String
	}
	if db.Notes.Valid {
		doc.Notes = &db.Notes.String
	}
	if db.DueDate.Valid {
		doc.DueDate = &db.DueDate.Time
	}
	if db.RelatedDocumentID.Valid {
		id := uint64(db.RelatedDocumentID.Int64)
		doc.RelatedDocumentID = &id
	}
	if db.PaidAt.Valid {
		doc.PaidAt = &db.PaidAt.Time
	}
	createdAt, updatedAt := db.CreatedAt, db.UpdatedAt
	doc.CreatedAt = &createdAt
	doc.UpdatedAt = &updatedAt
	return doc
}

type DocumentRepositoryInterface interface {
	GetDocuments(ctx context.Context, filter entities.DocumentFilter) ([]entities.Document, uint64, error)
	FindDocument(ctx context.Context, documentType workflow.DocumentType, id uint64) (*entities.Document, error)
	FindDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentType workflow.DocumentType, id uint64) (*entities.Document, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, doc *entities.Document) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status workflow.Status, paidAt *time.Time) error
}

type DocumentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDocumentRepository(storage *pgxpool.Pool, logger *zap.Logger) DocumentRepositoryInterface {
	return &DocumentRepository{storage: storage, logger: logger}
}

// buildDocumentFilter накладывает условия фильтра на выборку списка или счётчика.
func buildDocumentFilter(builder sq.SelectBuilder, filter entities.DocumentFilter) sq.SelectBuilder {
	builder = builder.Where(sq.Eq{"document_type": filter.DocumentType.String()})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"number": pattern},
			sq.ILike{"customer_name": pattern},
			sq.ILike{"customer_email": pattern},
		})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"issue_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"issue_date": *filter.DateTo})
	}
	if filter.RelatedID != nil {
		builder = builder.Where(sq.Eq{"related_document_id": *filter.RelatedID})
	}
	return builder
}

// documentSortColumns - поля, по которым разрешена сортировка списка.
var documentSortColumns = map[string]string{
	"number":      "number",
	"status":      "status",
	"issue_date":  "issue_date",
	"due_date":    "due_date",
	"grand_total": "grand_total",
	"created_at":  "created_at",
}

func buildDocumentListQuery(filter entities.DocumentFilter) sq.SelectBuilder {
	builder := buildDocumentFilter(psql.Select(documentFields).From(documentTable), filter)
	builder = bd.ApplySort(builder, filter.Sort, documentSortColumns, "issue_date DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}
	return builder
}

func buildDocumentCountQuery(filter entities.DocumentFilter) sq.SelectBuilder {
	return buildDocumentFilter(psql.Select("COUNT(*)").From(documentTable), filter)
}

func (r *DocumentRepository) GetDocuments(ctx context.Context, filter entities.DocumentFilter) ([]entities.Document, uint64, error) {
	countSQL, countArgs, err := buildDocumentCountQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчёта документов: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта документов: %w", err)
	}
	if total == 0 {
		return []entities.Document{}, 0, nil
	}

	query, args, err := buildDocumentListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка документов: %w", err)
	}
	r.logger.Debug("GetDocuments", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка документов: %w", err)
	}
	defer rows.Close()

	docs := make([]entities.Document, 0)
	for rows.Next() {
		var dbRow dbDocument
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования документа в списке: %w", err)
		}
		docs = append(docs, *dbRow.ToEntity())
	}
	return docs, total, rows.Err()
}

func (r *DocumentRepository) FindDocument(ctx context.Context, documentType workflow.DocumentType, id uint64) (*entities.Document, error) {
	return r.findDocument(ctx, r.storage, documentType, id, false)
}

// FindDocumentForUpdate блокирует строку документа до конца транзакции.
func (r *DocumentRepository) FindDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentType workflow.DocumentType, id uint64) (*entities.Document, error) {
	return r.findDocument(ctx, tx, documentType, id, true)
}

// buildFindDocumentQuery выбирает один документ нужного типа; lock блокирует строку.
func buildFindDocumentQuery(documentType workflow.DocumentType, id uint64, lock bool) sq.SelectBuilder {
	builder := psql.Select(documentFields).From(documentTable).
		Where(sq.Eq{"id": id, "document_type": documentType.String()})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder
}

func (r *DocumentRepository) findDocument(ctx context.Context, q querier, documentType workflow.DocumentType, id uint64, lock bool) (*entities.Document, error) {
	query, args, err := buildFindDocumentQuery(documentType, id, lock).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbDocument
	if err := q.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования документа: %w", err)
	}
	doc := dbRow.ToEntity()

	lines, err := r.findLines(ctx, q, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

func (r *DocumentRepository) findLines(ctx context.Context, q querier, documentID uint64) ([]entities.DocumentLine, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE document_id = $1 ORDER BY line_no", documentLineFields, documentLineTable)
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиций документа: %w", err)
	}
	defer rows.Close()

	lines := make([]entities.DocumentLine, 0)
	for rows.Next() {
		var l entities.DocumentLine
		var itemCode sql.NullString
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.LineNo, &itemCode, &l.Description, &l.Quantity,
			&l.UnitPrice, &l.TaxRate, &l.LineTotal, &l.TaxAmount); err != nil {
			return nil, fmt.Errorf("ошибка сканирования позиции документа: %w", err)
		}
		if itemCode.Valid {
			l.ItemCode = &itemCode.String
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// CreateInTx вставляет документ с позициями. Номер документа строится из id: QT-000042.
// Заполняет doc.ID, doc.Number, идентификаторы позиций и даты.
func (r *DocumentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, doc *entities.Document) error {
	query := `
		WITH next AS (SELECT nextval(pg_get_serial_sequence('documents', 'id')) AS id)
		INSERT INTO documents (
			id, number, document_type, status, customer_name, customer_email, currency, notes,
			issue_date, due_date, related_document_id, subtotal, tax_total, grand_total, created_by
		)
		SELECT next.id, $1 || '-' || lpad(next.id::text, 6, '0'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		FROM next
		RETURNING id, number, created_at, updated_at`

	var createdAt, updatedAt time.Time
	err := tx.QueryRow(ctx, query,
		doc.DocumentType.NumberPrefix(), doc.DocumentType.String(), doc.Status.String(),
		doc.CustomerName, doc.CustomerEmail, doc.Currency, doc.Notes,
		doc.IssueDate, doc.DueDate, doc.RelatedDocumentID,
		doc.Subtotal, doc.TaxTotal, doc.GrandTotal, doc.CreatedBy,
	).Scan(&doc.ID, &doc.Number, &createdAt, &updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return apperrors.ErrConflict
			case pgForeignKeyViolation:
				return apperrors.ErrNotFound
			}
		}
		return fmt.Errorf("ошибка записи в 'documents': %w", err)
	}
	doc.CreatedAt = &createdAt
	doc.UpdatedAt = &updatedAt

	if len(doc.Lines) == 0 {
		return nil
	}

	linesSQL, linesArgs, err := buildLinesInsert(doc.ID, doc.Lines).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки вставки позиций: %w", err)
	}
	rows, err := tx.Query(ctx, linesSQL, linesArgs...)
	if err != nil {
		return fmt.Errorf("ошибка записи в 'document_lines': %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&doc.Lines[i].ID); err != nil {
			return fmt.Errorf("ошибка чтения id позиции: %w", err)
		}
		doc.Lines[i].DocumentID = doc.ID
		i++
	}
	return rows.Err()
}

func buildLinesInsert(documentID uint64, lines []entities.DocumentLine) sq.InsertBuilder {
	builder := psql.Insert(documentLineTable).
		Columns("document_id", "line_no", "item_code", "description", "quantity", "unit_price", "tax_rate", "line_total", "tax_amount").
		Suffix("RETURNING id")
	for _, l := range lines {
		builder = builder.Values(documentID, l.LineNo, l.ItemCode, l.Description, l.Quantity, l.UnitPrice, l.TaxRate, l.LineTotal, l.TaxAmount)
	}
	return builder
}

func (r *DocumentRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status workflow.Status, paidAt *time.Time) error {
	builder := psql.Update(documentTable).
		Set("status", status.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	if paidAt != nil {
		builder = builder.Set("paid_at", *paidAt)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса документа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
