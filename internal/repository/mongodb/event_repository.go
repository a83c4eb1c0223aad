package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

type eventDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"userId"`
	Title  string             `bson:"title"`
	Start  time.Time          `bson:"start"`
	End    time.Time          `bson:"end"`
	AllDay bool               `bson:"allDay"`
}

func (d eventDocument) toDomain() domain.Event {
	return domain.Event{
		ID:     d.ID.Hex(),
		UserID: d.UserID.Hex(),
		Title:  d.Title,
		Start:  d.Start,
		End:    d.End,
		AllDay: d.AllDay,
	}
}

type EventRepository struct {
	coll *mongo.Collection
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (string, error) {
	owner, err := objectID(event.UserID, "event owner")
	if err != nil {
		return "", err
	}
	res, err := r.coll.InsertOne(ctx, eventDocument{
		UserID: owner,
		Title:  event.Title,
		Start:  event.Start.UTC(),
		End:    event.End.UTC(),
		AllDay: event.AllDay,
	})
	if err != nil {
		return "", translate(err, "insert event")
	}
	event.ID = insertedID(res)
	return event.ID, nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]domain.Event, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.Event{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": owner}, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]domain.Event, len(docs))
	for i := range docs {
		events[i] = docs[i].toDomain()
	}
	return events, nil
}

func (r *EventRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Event, error) {
	filter, err := ownedFilter(id, userID, "event")
	if err != nil {
		return nil, err
	}
	var doc eventDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, "find event")
	}
	event := doc.toDomain()
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	filter, err := ownedFilter(event.ID, event.UserID, "event")
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":  event.Title,
		"start":  event.Start.UTC(),
		"end":    event.End.UTC(),
		"allDay": event.AllDay,
	}})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update event: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *EventRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	filter, err := ownedFilter(id, userID, "event")
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete event: %w", repository.ErrNotFound)
	}
	return nil
}

func ownedFilter(id, userID, what string) (bson.M, error) {
	oid, err := objectID(id, what)
	if err != nil {
		return nil, err
	}
	owner, err := objectID(userID, what+" owner")
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "userId": owner}, nil
}
