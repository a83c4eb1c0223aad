package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/config"
	"daybook/internal/domain"
	"daybook/internal/service"
)

func sqliteConfig(t *testing.T) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "daybook.db")
	return cfg
}

func TestSetRole_GrantAndRevoke(t *testing.T) {
	ctx := context.Background()
	store, err := openStore(ctx, sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	users := service.NewUserService(store.Users(), store.Profiles())
	_, err = users.Register(ctx, service.RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	user, err := setRole(ctx, users, "alice", false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	stored, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())

	user, err = setRole(ctx, users, "alice", true)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStandard, user.Role)

	_, err = setRole(ctx, users, "ghost", false)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.Database.Driver = "postgres"
	_, err := openStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestBuildStorage_DisabledWithoutBucket(t *testing.T) {
	logger := logrus.New()
	svc, err := buildStorage(context.Background(), config.Config{}, logger)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}
