package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"daybook/internal/domain"
	"daybook/internal/repository"
	"daybook/internal/storage"
)

// PictureURLLifetime is how long presigned profile picture links stay valid.
const PictureURLLifetime = 15 * time.Minute

// ProfileView is a profile together with its owner, as returned by reads.
type ProfileView struct {
	User    domain.User
	Profile domain.UserProfile
	// PictureURL is a presigned link when the picture lives in object storage.
	PictureURL string
}

// PictureUpload describes an uploaded profile picture.
type PictureUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProfileService reads and updates user profiles by username.
type ProfileService interface {
	Get(ctx context.Context, username string) (*ProfileView, error)
	Update(ctx context.Context, username, profilePicture, bio string) (*domain.UserProfile, error)
	UploadPicture(ctx context.Context, username string, upload PictureUpload) (*domain.UserProfile, error)
}

// StorageOptions configures where uploaded pictures go. A nil Service or empty
// Bucket disables uploads.
type StorageOptions struct {
	Service   storage.Service
	Bucket    string
	KeyPrefix string
}

type profileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	store    StorageOptions
}

func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository, store StorageOptions) ProfileService {
	return &profileService{
		users:    users,
		profiles: profiles,
		store:    store,
	}
}

func (s *profileService) storageEnabled() bool {
	return s.store.Service != nil && s.store.Bucket != ""
}

func (s *profileService) resolve(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

func (s *profileService) Get(ctx context.Context, username string) (*ProfileView, error) {
	user, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	view := &ProfileView{User: *sanitizeUser(user), Profile: *profile}
	if s.storageEnabled() && storage.IsLocation(profile.ProfilePicture) {
		if key, err := storage.ParseLocation(profile.ProfilePicture, s.store.Bucket); err == nil {
			// a failed presign leaves the stored reference as the only link
			if url, err := s.store.Service.GetObjectURL(ctx, s.store.Bucket, key, PictureURLLifetime); err == nil {
				view.PictureURL = url
			}
		}
	}
	return view, nil
}

// Update overwrites both the picture reference and the bio; empty values clear them.
func (s *profileService) Update(ctx context.Context, username, profilePicture, bio string) (*domain.UserProfile, error) {
	user, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.UpdateByUserID(ctx, user.ID, profilePicture, bio)
	if err != nil {
		return nil, profileLookupError(err)
	}
	return profile, nil
}

// UploadPicture stores the picture and points the profile at it, keeping the bio.
// The previously uploaded picture is removed once the profile is updated.
func (s *profileService) UploadPicture(ctx context.Context, username string, upload PictureUpload) (*domain.UserProfile, error) {
	if !s.storageEnabled() {
		return nil, ErrStorageDisabled
	}
	if upload.Body == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	user, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	current, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	key := s.pictureKey(user.ID, upload.Filename)
	location, err := s.store.Service.PutObject(ctx, s.store.Bucket, key, upload.Body, upload.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store picture: %w", err)
	}

	profile, err := s.profiles.UpdateByUserID(ctx, user.ID, location, current.Bio)
	if err != nil {
		_ = s.store.Service.DeleteObject(ctx, s.store.Bucket, key)
		return nil, profileLookupError(err)
	}

	if oldKey, err := storage.ParseLocation(current.ProfilePicture, s.store.Bucket); err == nil && oldKey != key {
		_ = s.store.Service.DeleteObject(ctx, s.store.Bucket, oldKey)
	}
	return profile, nil
}

func (s *profileService) pictureKey(userID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.NewString() + ext
	prefix := strings.Trim(s.store.KeyPrefix, "/")
	if prefix == "" {
		return path.Join(userID, name)
	}
	return path.Join(prefix, userID, name)
}

func profileLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}
