package resilience

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// PolicySettings are the tunables for a Policy, as read from configuration.
type PolicySettings struct {
	MaxAttempts      int
	InitialBackoffMs int
	MaxBackoffMs     int
	FailureThreshold int
	ResetTimeoutSecs int
}

// Policy combines a retry schedule with a circuit breaker for one
// downstream component.
type Policy struct {
	Name    string
	Retry   RetryConfig
	Breaker *CircuitBreaker
}

// NewPolicy builds a Policy from settings. Zero values fall back to the
// package defaults. shouldRetry overrides IsTransient when non-nil.
func NewPolicy(name string, s PolicySettings, shouldRetry func(error) bool) *Policy {
	retry := DefaultRetryConfig()
	if s.MaxAttempts > 0 {
		retry.MaxAttempts = s.MaxAttempts
	}
	if s.InitialBackoffMs > 0 {
		retry.InitialBackoff = time.Duration(s.InitialBackoffMs) * time.Millisecond
	}
	if s.MaxBackoffMs > 0 {
		retry.MaxBackoff = time.Duration(s.MaxBackoffMs) * time.Millisecond
	}
	if shouldRetry == nil {
		shouldRetry = IsTransient
	}
	// A rejected call is not retried; the breaker will still be open.
	retry.ShouldRetry = func(err error) bool {
		return !errors.Is(err, ErrCircuitOpen) && shouldRetry(err)
	}
	retry.OnRetry = RetryLogger(name)

	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: s.FailureThreshold,
		ResetTimeout:     time.Duration(s.ResetTimeoutSecs) * time.Second,
		ShouldTrip:       shouldRetry,
		OnStateChange: func(from, to CircuitState) {
			zap.L().Warn("resilience: circuit state change",
				zap.String("component", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return &Policy{Name: name, Retry: retry, Breaker: breaker}
}

// Call runs fn under the policy: each attempt passes through the breaker,
// and transient failures are retried on the backoff schedule.
func Call[T any](ctx context.Context, p *Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	return DoVal(ctx, p.Retry, func(ctx context.Context) (T, error) {
		return ExecuteVal(ctx, p.Breaker, fn)
	})
}
