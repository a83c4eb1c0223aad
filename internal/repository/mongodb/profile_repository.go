package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"daybook/internal/domain"
)

type profileDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"userId"`
	ProfilePicture string             `bson:"profilePicture"`
	Bio            string             `bson:"bio"`
}

func (d profileDocument) toDomain() domain.UserProfile {
	return domain.UserProfile{
		ID:             d.ID.Hex(),
		UserID:         d.UserID.Hex(),
		ProfilePicture: d.ProfilePicture,
		Bio:            d.Bio,
	}
}

type ProfileRepository struct {
	coll *mongo.Collection
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) (string, error) {
	userOID, err := objectID(profile.UserID, "profile owner")
	if err != nil {
		return "", err
	}
	res, err := r.coll.InsertOne(ctx, profileDocument{
		UserID:         userOID,
		ProfilePicture: profile.ProfilePicture,
		Bio:            profile.Bio,
	})
	if err != nil {
		return "", translate(err, "insert profile")
	}
	profile.ID = insertedID(res)
	return profile.ID, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	userOID, err := objectID(userID, "profile owner")
	if err != nil {
		return nil, err
	}
	var doc profileDocument
	if err := r.coll.FindOne(ctx, bson.M{"userId": userOID}).Decode(&doc); err != nil {
		return nil, translate(err, "find profile")
	}
	profile := doc.toDomain()
	return &profile, nil
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]domain.UserProfile, error) {
	oids := make([]primitive.ObjectID, 0, len(userIDs))
	for _, id := range userIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var docs []profileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]domain.UserProfile, len(docs))
	for i := range docs {
		profiles[i] = docs[i].toDomain()
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateByUserID(ctx context.Context, userID, profilePicture, bio string) (*domain.UserProfile, error) {
	userOID, err := objectID(userID, "profile owner")
	if err != nil {
		return nil, err
	}

	var doc profileDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userOID},
		bson.M{"$set": bson.M{"profilePicture": profilePicture, "bio": bio}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err, "update profile")
	}
	profile := doc.toDomain()
	return &profile, nil
}
