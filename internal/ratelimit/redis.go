package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "intake:ratelimit:"

// RedisLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE,
// for deployments running more than one instance behind a balancer.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

// RedisOptions holds the connection settings for the limiter store
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisLimiter connects to Redis and returns a limiter allowing max
// submissions per key per window
func NewRedisLimiter(opts RedisOptions, max int, window time.Duration) (*RedisLimiter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLimiter{rdb: rdb, max: max, window: window}, nil
}

// Allow performs the atomic check-and-increment for key. INCR is
// atomic server-side, so concurrent submissions across instances
// cannot lose counts.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	k := redisKeyPrefix + key

	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit increment failed: %w", err)
	}

	// First hit in a window creates the key; give it the window TTL
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	if int(count) > l.max {
		ttl, err := l.rdb.TTL(ctx, k).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return Decision{Allowed: false, Count: int(count), RetryAfter: ttl}, nil
	}

	return Decision{Allowed: true, Count: int(count)}, nil
}

// Close closes the Redis connection
func (l *RedisLimiter) Close() error {
	return l.rdb.Close()
}

// Ping checks connectivity for readiness probes
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}
