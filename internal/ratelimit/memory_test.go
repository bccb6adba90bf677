package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fixedClock lets tests move time forward without sleeping
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, max int, window time.Duration) (*MemoryLimiter, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(max, window)
	l.now = clock.Now
	t.Cleanup(func() { l.Close() })
	return l, clock
}

func TestMemoryLimiterAllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d, err := l.Allow(ctx, "198.51.100.7")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !d.Allowed {
			t.Fatalf("submission %d blocked, want allowed", i)
		}
		if d.Count != i {
			t.Errorf("submission %d count = %d, want %d", i, d.Count, i)
		}
	}

	d, err := l.Allow(ctx, "198.51.100.7")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if d.Allowed {
		t.Fatal("fourth submission allowed, want blocked")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %s, want within (0, 1m]", d.RetryAfter)
	}
}

func TestMemoryLimiterCountsBlockedAttempts(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	// Blocked attempts still increment the counter, so Count reflects
	// total attempts in the window rather than capping at max.
	for i := 0; i < 6; i++ {
		d, err := l.Allow(ctx, "198.51.100.7")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if want := i + 1; d.Count != want {
			t.Errorf("attempt %d count = %d, want %d", i+1, d.Count, want)
		}
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l, clock := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		l.Allow(ctx, "198.51.100.7")
	}

	clock.Advance(61 * time.Second)

	d, err := l.Allow(ctx, "198.51.100.7")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !d.Allowed {
		t.Fatal("submission after window expiry blocked, want allowed")
	}
	if d.Count != 1 {
		t.Errorf("count after reset = %d, want 1", d.Count)
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		l.Allow(ctx, "198.51.100.7")
	}

	d, err := l.Allow(ctx, "203.0.113.9")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !d.Allowed || d.Count != 1 {
		t.Errorf("fresh key decision = %+v, want allowed with count 1", d)
	}
}

func TestMemoryLimiterConcurrentAccess(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(ctx, "198.51.100.7")
			if err != nil {
				t.Errorf("Allow returned error: %v", err)
				return
			}
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 3 {
		t.Errorf("allowed %d concurrent submissions, want exactly 3", allowed)
	}
}

func TestMemoryLimiterCloseIsIdempotent(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	if err := l.Close(); err != nil {
		t.Fatalf("first Close returned %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close returned %v", err)
	}
}
