package models

import (
	"fmt"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// RetryAfter returns the whole seconds a caller should wait before retrying,
// rounded up so a fraction of a second never rounds to zero.
func (r *Result) RetryAfter(now time.Time) int {
	if r.Allowed {
		return 0
	}
	secs := int(r.ResetAt.Sub(now).Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return secs
}

// IPKey builds the limiter key for an unauthenticated caller.
func IPKey(ip string) string {
	return fmt.Sprintf("ratelimit:ip:%s", ip)
}
