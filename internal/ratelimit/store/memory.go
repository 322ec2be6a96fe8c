package store

import (
	"context"
	"sync"
	"time"

	"wordsrecord/internal/ratelimit/models"
)

// Memory is a sliding-window limiter held in process memory. It is not
// distributed; use the Redis store when running more than one instance.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	timestamps []time.Time
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]*window)}
}

// Allow records one request against key and reports whether it fits within
// limit requests per windowSize.
func (s *Memory) Allow(_ context.Context, key string, limit int, windowSize time.Duration) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.windows[key]
	if !ok {
		w = &window{}
		s.windows[key] = w
	}
	w.prune(now, windowSize)

	if len(w.timestamps) >= limit {
		return &models.Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   w.timestamps[0].Add(windowSize),
			Limit:     limit,
		}, nil
	}

	w.timestamps = append(w.timestamps, now)
	return &models.Result{
		Allowed:   true,
		Remaining: limit - len(w.timestamps),
		ResetAt:   w.timestamps[0].Add(windowSize),
		Limit:     limit,
	}, nil
}

func (w *window) prune(now time.Time, windowSize time.Duration) {
	cutoff := now.Add(-windowSize)
	kept := w.timestamps[:0]
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.timestamps = kept
}
