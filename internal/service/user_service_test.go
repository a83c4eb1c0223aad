package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestUserService(store)

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1", Email: "alice@example.com", FullName: "Alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, domain.RoleStandard, user.Role)

	stored, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))

	profile, err := store.Profiles().GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Bio)
	assert.Empty(t, profile.ProfilePicture)

	loggedIn, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestUserService(store)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_PresenceChecks(t *testing.T) {
	svc := newTestUserService(newTestStore(t))

	_, err := svc.Register(context.Background(), RegisterInput{Username: "  ", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Register(context.Background(), RegisterInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type failingProfiles struct {
	repository.ProfileRepository
	err error
}

func (f failingProfiles) Create(context.Context, *domain.UserProfile) (string, error) {
	return "", f.err
}

func TestRegister_ProfileFailureRemovesUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	boom := errors.New("profile insert failed")
	svc := &userService{
		users:    store.Users(),
		profiles: failingProfiles{ProfileRepository: store.Profiles(), err: boom},
		cost:     bcrypt.MinCost,
	}

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	assert.ErrorIs(t, err, boom)

	_, err = store.Users().GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(newTestStore(t))
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = svc.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinProfiles(t *testing.T) {
	users := []domain.User{
		{ID: "u1", Username: "a", PasswordHash: "h1"},
		{ID: "u2", Username: "b"},
		{ID: "u3", Username: "c"},
	}
	// out of order and one user without a profile
	profiles := []domain.UserProfile{
		{ID: "p3", UserID: "u3", Bio: "third"},
		{ID: "px", UserID: "unknown"},
		{ID: "p1", UserID: "u1", Bio: "first"},
	}

	joined := joinProfiles(users, profiles)
	require.Len(t, joined, 3)

	assert.Equal(t, "u1", joined[0].User.ID)
	require.NotNil(t, joined[0].Profile)
	assert.Equal(t, "first", joined[0].Profile.Bio)
	assert.Empty(t, joined[0].User.PasswordHash)

	assert.Equal(t, "u2", joined[1].User.ID)
	assert.Nil(t, joined[1].Profile)

	require.NotNil(t, joined[2].Profile)
	assert.Equal(t, "p3", joined[2].Profile.ID)
}

func TestListWithProfiles(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestUserService(store)

	for _, name := range []string{"alice", "bob"} {
		_, err := svc.Register(ctx, RegisterInput{Username: name, Password: "pw"})
		require.NoError(t, err)
	}
	orphan := &domain.User{Username: "orphan", PasswordHash: "x"}
	_, err := store.Users().Create(ctx, orphan)
	require.NoError(t, err)

	list, err := svc.ListWithProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	withProfile := 0
	for _, entry := range list {
		if entry.Profile != nil {
			withProfile++
			assert.Equal(t, entry.User.ID, entry.Profile.UserID)
		} else {
			assert.Equal(t, "orphan", entry.User.Username)
		}
	}
	assert.Equal(t, 2, withProfile)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestUserService(store)

	alice, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Password: "pw2"})
	require.NoError(t, err)

	admin := true
	email := "alice@corp.example"
	newPassword := "pw-new"
	updated, err := svc.Update(ctx, alice.ID, UserUpdate{IsAdmin: &admin, Email: &email, Password: &newPassword})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "alice", updated.Username)

	_, err = svc.Login(ctx, "alice", "pw-new")
	assert.NoError(t, err)

	taken := "bob"
	_, err = svc.Update(ctx, alice.ID, UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.Update(ctx, "missing", UserUpdate{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_LeavesProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestUserService(store)

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), ErrUserNotFound)

	_, err = store.Profiles().GetByUserID(ctx, user.ID)
	assert.NoError(t, err)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(newTestStore(t))
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	user, err := svc.SetRole(ctx, "alice", domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	_, err = svc.SetRole(ctx, "alice", domain.Role("root"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SetRole(ctx, "ghost", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
