package ratelimit

import (
	"context"
	"time"
)

// Decision reports the outcome of a check-and-increment for one key
type Decision struct {
	// Allowed is false once the submission count for the key has
	// exceeded the configured threshold within the current window.
	Allowed bool

	// Count is the post-increment submission count in the window.
	// It keeps growing past the threshold for a persistent caller.
	Count int

	// RetryAfter is how long until the window resets. Only meaningful
	// when Allowed is false.
	RetryAfter time.Duration
}

// Limiter bounds the number of accepted submissions per key within a
// fixed time window. The check-and-increment must be atomic per key:
// concurrent submissions from the same address may not lose counts.
//
// The pipeline does not know which backing store is in use; single
// instance deployments use the in-memory table, multi-instance
// deployments can share a Redis-backed one.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Close() error
}
