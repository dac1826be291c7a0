package redisrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/workmap/auth-service/sessions"
	"github.com/workmap/auth-service/sessions/redisrepo"
)

func setupRepo(t *testing.T) (*redisrepo.Repo, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisrepo.NewRepo(client), srv
}

func TestGetAbsent(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Get(context.Background(), "user-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestStoreThenGet(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "user-1", "token-a", time.Hour))

	token, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "token-a", token)
}

func TestStoreOverwrites(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "user-1", "token-a", time.Hour))
	require.NoError(t, repo.Store(ctx, "user-1", "token-b", time.Hour))

	token, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "token-b", token)
}

func TestStoreSetsTTL(t *testing.T) {
	repo, srv := setupRepo(t)

	require.NoError(t, repo.Store(context.Background(), "user-1", "token-a", time.Hour))
	require.Equal(t, time.Hour, srv.TTL("refresh_token:user-1"))
}

func TestGetAfterExpiry(t *testing.T) {
	repo, srv := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "user-1", "token-a", time.Minute))
	srv.FastForward(time.Minute + time.Second)

	_, err := repo.Get(ctx, "user-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestRemove(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "user-1", "token-a", time.Hour))

	existed, err := repo.Remove(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, existed)

	existed, err = repo.Remove(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, existed)

	_, err = repo.Get(ctx, "user-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestKeysAreScopedPerUser(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "user-1", "token-a", time.Hour))
	require.NoError(t, repo.Store(ctx, "user-2", "token-b", time.Hour))

	existed, err := repo.Remove(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, existed)

	token, err := repo.Get(ctx, "user-2")
	require.NoError(t, err)
	require.Equal(t, "token-b", token)
}
