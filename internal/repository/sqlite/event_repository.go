package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	start_at DATETIME NOT NULL,
	end_at DATETIME NOT NULL,
	all_day INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id, start_at);
`

const selectEvent = `
SELECT id, user_id, title, start_at, end_at, all_day
FROM events`

type EventRepository struct {
	db *sql.DB
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO events (id, user_id, title, start_at, end_at, all_day)
VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		event.UserID,
		event.Title,
		event.Start.UTC(),
		event.End.UTC(),
		event.AllDay,
	)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	event.ID = id
	return id, nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, selectEvent+` WHERE user_id = ? ORDER BY start_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func (r *EventRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, selectEvent+` WHERE id = ? AND user_id = ?`, id, userID)
	return scanEvent(row)
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE events
SET title = ?, start_at = ?, end_at = ?, all_day = ?
WHERE id = ? AND user_id = ?`,
		event.Title,
		event.Start.UTC(),
		event.End.UTC(),
		event.AllDay,
		event.ID,
		event.UserID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return expectAffected(res, "event")
}

func (r *EventRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return expectAffected(res, "event")
}

func scanEvent(row scanner) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.Start,
		&event.End,
		&event.AllDay,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &event, nil
}
