package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

func fail(context.Context) (string, error)    { return "", errBackend }
func succeed(context.Context) (string, error) { return "ok", nil }

func newTestBreaker(threshold int, reset time.Duration) (*CircuitBreaker, *time.Time) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: threshold, ResetTimeout: reset})
	cb.now = func() time.Time { return now }
	return cb, &now
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)
	ctx := context.Background()

	for range 3 {
		_, err := ExecuteVal(ctx, cb, fail)
		require.ErrorIs(t, err, errBackend)
	}
	assert.Equal(t, CircuitOpen, cb.State())

	called := false
	_, err := ExecuteVal(ctx, cb, func(context.Context) (string, error) {
		called = true
		return "", nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)
	ctx := context.Background()

	_, _ = ExecuteVal(ctx, cb, fail)
	_, _ = ExecuteVal(ctx, cb, fail)
	assert.Equal(t, 2, cb.Failures())

	val, err := ExecuteVal(ctx, cb, succeed)
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 0, cb.Failures())
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenTrial(t *testing.T) {
	cb, now := newTestBreaker(1, 30*time.Second)
	ctx := context.Background()

	_, _ = ExecuteVal(ctx, cb, fail)
	require.Equal(t, CircuitOpen, cb.State())

	*now = now.Add(31 * time.Second)
	assert.Equal(t, CircuitHalfOpen, cb.State())

	_, err := ExecuteVal(ctx, cb, succeed)
	require.NoError(t, err)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, now := newTestBreaker(1, 30*time.Second)
	ctx := context.Background()

	_, _ = ExecuteVal(ctx, cb, fail)
	*now = now.Add(31 * time.Second)

	_, err := ExecuteVal(ctx, cb, fail)
	require.ErrorIs(t, err, errBackend)
	assert.Equal(t, CircuitOpen, cb.State())

	_, err = ExecuteVal(ctx, cb, succeed)
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_ShouldTripFiltersErrors(t *testing.T) {
	errPermanent := errors.New("malformed reply")
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ShouldTrip:       func(err error) bool { return !errors.Is(err, errPermanent) },
	})

	_, err := ExecuteVal(context.Background(), cb, func(context.Context) (int, error) { return 0, errPermanent })
	require.ErrorIs(t, err, errPermanent)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_, _ = ExecuteVal(context.Background(), cb, fail)
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1000})
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = ExecuteVal(context.Background(), cb, fail)
			} else {
				_, _ = ExecuteVal(context.Background(), cb, succeed)
			}
			_ = cb.State()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}
