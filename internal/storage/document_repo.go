package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks hrpilot/internal/storage DocumentStore

// DocumentFilter narrows ListAll results. Zero values mean "no filter".
type DocumentFilter struct {
	// Query matches case-insensitively against name and description.
	Query    string
	Category string
	// IncludeDeleted also returns soft-deleted documents.
	IncludeDeleted bool
}

// DocumentStore is the catalog of uploaded knowledge-base documents.
type DocumentStore interface {
	Insert(ctx context.Context, d *Document) error
	ListAll(ctx context.Context, filter DocumentFilter) ([]Document, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	// Update changes name, category and description; empty fields keep their
	// current value.
	Update(ctx context.Context, id string, name, category, description string) (*Document, error)
	SoftDelete(ctx context.Context, id string) error
	SetChunkCount(ctx context.Context, id string, count int) error
}

// DocumentRepository is a SQLite-backed DocumentStore.
type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = "id, name, category, filename, description, uploader, content, chunk_count, uploaded_at, deleted_at"

func scanDocument(row interface{ Scan(...any) error }) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.Name, &d.Category, &d.Filename, &d.Description,
		&d.Uploader, &d.Content, &d.ChunkCount, &d.UploadedAt, &d.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) Insert(ctx context.Context, d *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, category, filename, description, uploader, content, chunk_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Category, d.Filename, d.Description, d.Uploader, d.Content, d.ChunkCount)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) ListAll(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	query := "SELECT " + documentColumns + " FROM documents WHERE 1=1"
	var args []any

	if !filter.IncludeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Query != "" {
		query += " AND (name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)"
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY uploaded_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*Document, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) Update(ctx context.Context, id string, name, category, description string) (*Document, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = current.Name
	}
	if category == "" {
		category = current.Category
	} else {
		category = ValidCategory(category)
	}
	if description == "" {
		description = current.Description
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE documents SET name = ?, category = ?, description = ? WHERE id = ?",
		name, category, description, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	current.Name = name
	current.Category = category
	current.Description = description
	return current, nil
}

func (r *DocumentRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *DocumentRepository) SetChunkCount(ctx context.Context, id string, count int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE documents SET chunk_count = ? WHERE id = ?", count, id)
	if err != nil {
		return fmt.Errorf("failed to set chunk count: %w", err)
	}
	return nil
}
