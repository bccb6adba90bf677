package monitoring

import (
	"context"
	"time"

	"github.com/heptiolabs/healthcheck"
)

// HealthOptions configures the liveness/readiness checks
type HealthOptions struct {
	// SMTPAddr is the host:port of the mail relay; empty disables the
	// relay readiness check (useful in tests).
	SMTPAddr string

	// RedisPing is non-nil when Redis-backed rate limiting is active
	RedisPing func(ctx context.Context) error
}

// NewHealthHandler builds the liveness and readiness probe handler.
// Liveness only asserts the process is not wedged; readiness requires
// the external collaborators to be reachable.
func NewHealthHandler(opts HealthOptions) healthcheck.Handler {
	health := healthcheck.NewHandler()

	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(200))

	if opts.SMTPAddr != "" {
		health.AddReadinessCheck("mail-relay", healthcheck.TCPDialCheck(opts.SMTPAddr, 3*time.Second))
	}

	if opts.RedisPing != nil {
		health.AddReadinessCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return opts.RedisPing(ctx)
		})
	}

	return health
}
