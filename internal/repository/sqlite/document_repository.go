package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_user_updated ON documents(user_id, updated_at);
`

const selectDocument = `
SELECT id, user_id, name, content, created_at, updated_at
FROM documents`

type DocumentRepository struct {
	db *sql.DB
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) (string, error) {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (id, user_id, name, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		doc.UserID,
		doc.Name,
		doc.Content,
		doc.CreatedAt.UTC(),
		doc.UpdatedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	doc.ID = id
	return id, nil
}

func (r *DocumentRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, selectDocument+` WHERE id = ? AND user_id = ?`, id, userID)
	return scanDocument(row)
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, selectDocument+` WHERE user_id = ? ORDER BY updated_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET name = ?, content = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		doc.Name,
		doc.Content,
		doc.UpdatedAt.UTC(),
		doc.ID,
		doc.UserID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return expectAffected(res, "document")
}

func (r *DocumentRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return expectAffected(res, "document")
}

func scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Name,
		&doc.Content,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &doc, nil
}
