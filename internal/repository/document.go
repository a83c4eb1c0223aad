package repository

import (
	"context"

	"daybook/internal/domain"
)

// DocumentRepository exposes persistence operations for text documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (string, error)
	GetForUser(ctx context.Context, id, userID string) (*domain.Document, error)
	// ListByUser returns the user's documents, most recently updated first.
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	DeleteForUser(ctx context.Context, id, userID string) error
}
