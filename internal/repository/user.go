package repository

import (
	"context"

	"daybook/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// ProfileRepository manages the profile attached to each user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) (string, error)
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]domain.UserProfile, error)
	// UpdateByUserID overwrites both mutable fields and returns the stored profile.
	UpdateByUserID(ctx context.Context, userID, profilePicture, bio string) (*domain.UserProfile, error)
}
