package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"daybook/internal/repository"
	"daybook/internal/repository/sqlite"
)

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	require.NoError(t, store.Init(context.Background()))
	return store
}

func newTestUserService(store repository.Store) *userService {
	svc := NewUserService(store.Users(), store.Profiles()).(*userService)
	svc.cost = bcrypt.MinCost
	return svc
}
