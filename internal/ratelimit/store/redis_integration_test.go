//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wordsrecord/internal/ratelimit/models"
	"wordsrecord/internal/ratelimit/store"
	"wordsrecord/pkg/testutil/containers"
)

func TestRedisStore_AllowAndBlock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(ctx))

	s := store.NewRedis(rc.Client)
	key := models.IPKey("203.0.113.9")

	var last *models.Result
	for range 3 {
		res, err := s.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		require.True(t, res.Allowed)
		last = res
	}
	require.Equal(t, 0, last.Remaining)

	res, err := s.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Equal(t, 0, res.Remaining)
	require.Equal(t, 3, res.Limit)
}

func TestRedisStore_IndependentKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(ctx))

	s := store.NewRedis(rc.Client)

	res, err := s.Allow(ctx, models.IPKey("198.51.100.1"), 1, time.Minute)
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = s.Allow(ctx, models.IPKey("198.51.100.1"), 1, time.Minute)
	require.NoError(t, err)
	require.False(t, res.Allowed)

	// A different client is not affected.
	res, err = s.Allow(ctx, models.IPKey("198.51.100.2"), 1, time.Minute)
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestRedisStore_WindowKeyExpires(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(ctx))

	s := store.NewRedis(rc.Client)
	key := models.IPKey("192.0.2.7")

	res, err := s.Allow(ctx, key, 1, time.Second)
	require.NoError(t, err)
	require.True(t, res.Allowed)

	// Wait out the window and the counter resets.
	time.Sleep(1100 * time.Millisecond)

	res, err = s.Allow(ctx, key, 1, time.Second)
	require.NoError(t, err)
	require.True(t, res.Allowed)
}
