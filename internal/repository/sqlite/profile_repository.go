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

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS user_profiles (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	profile_picture TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT ''
);
`

type ProfileRepository struct {
	db *sql.DB
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_profiles (id, user_id, profile_picture, bio)
VALUES (?, ?, ?, ?)`,
		id,
		profile.UserID,
		profile.ProfilePicture,
		profile.Bio,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert profile: %w", repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert profile: %w", err)
	}
	profile.ID = id
	return id, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, profile_picture, bio
FROM user_profiles
WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]domain.UserProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, profile_picture, bio
FROM user_profiles
WHERE user_id IN (`+placeholders(len(userIDs))+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) UpdateByUserID(ctx context.Context, userID, profilePicture, bio string) (*domain.UserProfile, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE user_profiles
SET profile_picture = ?, bio = ?
WHERE user_id = ?`,
		profilePicture,
		bio,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := expectAffected(res, "profile"); err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func scanProfile(row scanner) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ProfilePicture,
		&profile.Bio,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &profile, nil
}
