package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a fixed-window limiter backed by an in-process map.
// State is lost on restart and is not shared between instances; that
// is an accepted property of single-instance deployments, not a bug.
type MemoryLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*windowEntry

	// injectable clock for tests
	now func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewMemoryLimiter creates an in-memory limiter allowing max
// submissions per key per window and starts the expired-entry sweep.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		max:     max,
		window:  window,
		entries: make(map[string]*windowEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go l.cleanup()

	return l
}

// Allow performs the atomic check-and-increment for key
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetTime) {
		// First submission from this key, or the window has expired
		l.entries[key] = &windowEntry{count: 1, resetTime: now.Add(l.window)}
		return Decision{Allowed: true, Count: 1}, nil
	}

	// The counter increments even on and past the request that trips
	// the limit, so Count reflects total attempts in the window.
	e.count++
	if e.count > l.max {
		return Decision{
			Allowed:    false,
			Count:      e.count,
			RetryAfter: e.resetTime.Sub(now),
		}, nil
	}

	return Decision{Allowed: true, Count: e.count}, nil
}

// Close stops the cleanup goroutine
func (l *MemoryLimiter) Close() error {
	l.once.Do(func() { close(l.stop) })
	return nil
}

// cleanup periodically drops entries whose window has expired, so the
// table does not grow with every address ever seen
func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, e := range l.entries {
				if now.After(e.resetTime) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
