package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"daybook/internal/repository"
)

const (
	usersCollection     = "users"
	profilesCollection  = "userprofiles"
	eventsCollection    = "events"
	documentsCollection = "documents"
)

// Store is the MongoDB backed repository.Store.
type Store struct {
	db        *mongo.Database
	users     *UserRepository
	profiles  *ProfileRepository
	events    *EventRepository
	documents *DocumentRepository
}

// Connect dials the deployment at uri and verifies it is reachable.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewStore(client.Database(database)), nil
}

// NewStore builds the repositories on top of an already connected database.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		db:        db,
		users:     &UserRepository{coll: db.Collection(usersCollection)},
		profiles:  &ProfileRepository{coll: db.Collection(profilesCollection)},
		events:    &EventRepository{coll: db.Collection(eventsCollection)},
		documents: &DocumentRepository{coll: db.Collection(documentsCollection)},
	}
}

func (s *Store) Init(ctx context.Context) error {
	indexes := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{usersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{profilesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{eventsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "start", Value: 1}},
		}},
		{documentsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}},
		}},
	}
	for _, idx := range indexes {
		if _, err := s.db.Collection(idx.coll).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create %s index: %w", idx.coll, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Profiles() repository.ProfileRepository   { return s.profiles }
func (s *Store) Events() repository.EventRepository       { return s.events }
func (s *Store) Documents() repository.DocumentRepository { return s.documents }

var _ repository.Store = (*Store)(nil)

// objectID parses a hex identifier. Malformed ids can never match a record,
// so they surface as ErrNotFound instead of a cast failure.
func objectID(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", what, id, repository.ErrNotFound)
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", what, repository.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
