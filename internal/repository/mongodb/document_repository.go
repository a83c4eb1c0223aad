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

type documentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Name      string             `bson:"name"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d documentDocument) toDomain() domain.Document {
	return domain.Document{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type DocumentRepository struct {
	coll *mongo.Collection
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) (string, error) {
	owner, err := objectID(doc.UserID, "document owner")
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}

	res, err := r.coll.InsertOne(ctx, documentDocument{
		UserID:    owner,
		Name:      doc.Name,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	})
	if err != nil {
		return "", translate(err, "insert document")
	}
	doc.ID = insertedID(res)
	return doc.ID, nil
}

func (r *DocumentRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Document, error) {
	filter, err := ownedFilter(id, userID, "document")
	if err != nil {
		return nil, err
	}
	var raw documentDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&raw); err != nil {
		return nil, translate(err, "find document")
	}
	doc := raw.toDomain()
	return &doc, nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Document, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.Document{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var raws []documentDocument
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]domain.Document, len(raws))
	for i := range raws {
		docs[i] = raws[i].toDomain()
	}
	return docs, nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	filter, err := ownedFilter(doc.ID, doc.UserID, "document")
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"name":      doc.Name,
		"content":   doc.Content,
		"updatedAt": doc.UpdatedAt.UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update document: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *DocumentRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	filter, err := ownedFilter(id, userID, "document")
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete document: %w", repository.ErrNotFound)
	}
	return nil
}
