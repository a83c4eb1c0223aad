package repository

import (
	"context"

	"daybook/internal/domain"
)

// EventRepository exposes persistence operations for calendar events.
// Lookups and mutations are scoped to the owning user.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Event, error)
	GetForUser(ctx context.Context, id, userID string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	DeleteForUser(ctx context.Context, id, userID string) error
}
