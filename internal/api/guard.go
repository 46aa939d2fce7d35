package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/felixgeelhaar/fortify/retry"
)

// guard wraps every backend request with resilience patterns from fortify.
// A request that exhausts them still fails with an ordinary error, which the
// assembler's fallback chain treats like any other step failure.
type guard struct {
	breaker   circuitbreaker.CircuitBreaker[[]byte]
	retrier   retry.Retry[[]byte]
	rateLimit ratelimit.RateLimiter
}

// GuardConfig holds resilience settings for the backend client.
type GuardConfig struct {
	EnableCircuitBreaker bool
	EnableRetry          bool
	EnableRateLimit      bool

	// RatePerSecond for client-side rate limiting (default: 10)
	RatePerSecond int
}

// DefaultGuardConfig returns sensible defaults for backend calls.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		EnableCircuitBreaker: true,
		EnableRetry:          true,
		EnableRateLimit:      true,
		RatePerSecond:        10,
	}
}

func newGuard(cfg GuardConfig) *guard {
	g := &guard{}

	if cfg.EnableCircuitBreaker {
		g.breaker = circuitbreaker.New[[]byte](circuitbreaker.Config{
			MaxRequests: 2,
			Interval:    10 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				slog.Warn("backend circuit breaker state change",
					"from", from.String(), "to", to.String())
			},
		})
	}

	if cfg.EnableRetry {
		g.retrier = retry.New[[]byte](retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable:   isRetryable,
		})
	}

	if cfg.EnableRateLimit {
		rate := cfg.RatePerSecond
		if rate <= 0 {
			rate = 10
		}
		g.rateLimit = ratelimit.New(&ratelimit.Config{
			Rate:     rate,
			Burst:    rate * 2,
			Interval: time.Second,
		})
	}

	return g
}

func (g *guard) execute(ctx context.Context, key string, op func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if g.rateLimit != nil {
		if !g.rateLimit.Allow(ctx, key) {
			return nil, fmt.Errorf("rate limit exceeded for %s", key)
		}
	}

	if g.breaker != nil && g.retrier != nil {
		return g.breaker.Execute(ctx, func(ctx context.Context) ([]byte, error) {
			return g.retrier.Do(ctx, op)
		})
	}
	if g.breaker != nil {
		return g.breaker.Execute(ctx, op)
	}
	if g.retrier != nil {
		return g.retrier.Do(ctx, op)
	}
	return op(ctx)
}

// isRetryable reports whether a request is worth repeating: transient HTTP
// statuses and transport errors, never context cancellation or client-side
// mistakes.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	// transport-level failure (connection refused, reset, timeout)
	return true
}
