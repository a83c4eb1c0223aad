package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

// EventInput carries the fields of a new event.
type EventInput struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// EventPatch is a partial event update. Nil fields are left unchanged.
type EventPatch struct {
	Title  *string
	Start  *time.Time
	End    *time.Time
	AllDay *bool
}

// EventService manages the calendar events of the authenticated user.
type EventService interface {
	List(ctx context.Context, userID string) ([]domain.Event, error)
	Create(ctx context.Context, userID string, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, userID, eventID string, patch EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, userID, eventID string) error
}

type eventService struct {
	events repository.EventRepository
}

func NewEventService(events repository.EventRepository) EventService {
	return &eventService{events: events}
}

func (s *eventService) List(ctx context.Context, userID string) ([]domain.Event, error) {
	return s.events.ListByUser(ctx, userID)
}

func (s *eventService) Create(ctx context.Context, userID string, in EventInput) (*domain.Event, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	event := &domain.Event{
		UserID: userID,
		Title:  in.Title,
		Start:  in.Start,
		End:    in.End,
		AllDay: in.AllDay,
	}
	if _, err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, userID, eventID string, patch EventPatch) (*domain.Event, error) {
	event, err := s.events.GetForUser(ctx, eventID, userID)
	if err != nil {
		return nil, eventLookupError(err)
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Start != nil {
		event.Start = *patch.Start
	}
	if patch.End != nil {
		event.End = *patch.End
	}
	if patch.AllDay != nil {
		event.AllDay = *patch.AllDay
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, eventLookupError(err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, userID, eventID string) error {
	if err := s.events.DeleteForUser(ctx, eventID, userID); err != nil {
		return eventLookupError(err)
	}
	return nil
}

func eventLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}
