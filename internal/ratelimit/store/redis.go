package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wordsrecord/internal/ratelimit/models"
)

// Redis is a fixed-window limiter backed by a shared Redis instance, so the
// count holds across every running replica. The window key carries a TTL and
// expires on its own.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, windowSize time.Duration) (*models.Result, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s:%d", key, now.Unix()/int64(windowSize.Seconds()))

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, windowSize)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	windowStart := now.Truncate(windowSize)
	result := &models.Result{
		Allowed:   count <= limit,
		Remaining: limit - count,
		ResetAt:   windowStart.Add(windowSize),
		Limit:     limit,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	return result, nil
}
