package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

// PasswordCost is the bcrypt cost used for new password hashes.
const PasswordCost = 10

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// UserUpdate is a partial update applied by administrators. Nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Password *string
	Email    *string
	FullName *string
	IsAdmin  *bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ResolveID(ctx context.Context, username string) (string, error)
	ListWithProfiles(ctx context.Context) ([]domain.UserWithProfile, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	SetRole(ctx context.Context, username string, role domain.Role) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	cost     int
}

func NewUserService(users repository.UserRepository, profiles repository.ProfileRepository) UserService {
	return &userService{
		users:    users,
		profiles: profiles,
		cost:     PasswordCost,
	}
}

// Register creates the user and its empty profile. The existence check and the
// two inserts are separate store calls; a failed profile insert removes the
// user again so no account is left without a profile.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(in.Email),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         domain.RoleStandard,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	if _, err := s.profiles.Create(ctx, &domain.UserProfile{UserID: user.ID}); err != nil {
		profileErr := fmt.Errorf("create profile: %w", err)
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			return nil, errors.Join(profileErr, fmt.Errorf("remove user without profile: %w", delErr))
		}
		return nil, profileErr
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, userLookupError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) ResolveID(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", userLookupError(err)
	}
	return user.ID, nil
}

// ListWithProfiles returns every user in store order, each joined with its
// profile when one exists.
func (s *userService) ListWithProfiles(ctx context.Context) ([]domain.UserWithProfile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	profiles, err := s.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return joinProfiles(users, profiles), nil
}

func joinProfiles(users []domain.User, profiles []domain.UserProfile) []domain.UserWithProfile {
	byUser := make(map[string]*domain.UserProfile, len(profiles))
	for i := range profiles {
		if _, seen := byUser[profiles[i].UserID]; !seen {
			byUser[profiles[i].UserID] = &profiles[i]
		}
	}

	out := make([]domain.UserWithProfile, len(users))
	for i := range users {
		out[i] = domain.UserWithProfile{
			User:    *sanitizeUser(&users[i]),
			Profile: byUser[users[i].ID],
		}
	}
	return out
}

func (s *userService) Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
		}
		user.Username = username
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.IsAdmin != nil {
		user.Role = domain.RoleStandard
		if *update.IsAdmin {
			user.Role = domain.RoleAdmin
		}
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Delete removes the user record only. Profile, events and documents stay in place.
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userLookupError(err)
	}
	return nil
}

func (s *userService) SetRole(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	if role != domain.RoleAdmin && role != domain.RoleStandard {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, userLookupError(err)
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, userLookupError(err)
	}
	return sanitizeUser(user), nil
}

func userLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
