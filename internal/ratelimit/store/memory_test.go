package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsrecord/internal/ratelimit/models"
)

const testLimit = 5

func TestMemoryAllowUnderLimit(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	key := models.IPKey("203.0.113.7")

	for range testLimit {
		result, err := s.Allow(ctx, key, testLimit, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestMemoryBlocksOverLimit(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	key := models.IPKey("203.0.113.7")

	for range testLimit {
		_, err := s.Allow(ctx, key, testLimit, time.Minute)
		require.NoError(t, err)
	}

	result, err := s.Allow(ctx, key, testLimit, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Positive(t, result.RetryAfter(time.Now()))
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for range testLimit {
		_, err := s.Allow(ctx, models.IPKey("203.0.113.7"), testLimit, time.Minute)
		require.NoError(t, err)
	}

	result, err := s.Allow(ctx, models.IPKey("198.51.100.2"), testLimit, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestMemoryWindowExpires(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	key := models.IPKey("203.0.113.7")

	for range testLimit {
		_, err := s.Allow(ctx, key, testLimit, 10*time.Millisecond)
		require.NoError(t, err)
	}

	time.Sleep(20 * time.Millisecond)

	result, err := s.Allow(ctx, key, testLimit, 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
