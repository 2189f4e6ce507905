package generate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/billing-assistant/internal/metrics"
	"github.com/sells-group/billing-assistant/internal/resilience"
)

// Resilient decorates a Generator with a per-attempt timeout, retries on
// transient failures, and a circuit breaker.
type Resilient struct {
	inner   Generator
	policy  *resilience.Policy
	timeout time.Duration
}

// NewResilient wraps inner. A zero timeout leaves attempts unbounded.
func NewResilient(inner Generator, settings resilience.PolicySettings, timeout time.Duration) *Resilient {
	return &Resilient{
		inner:   inner,
		policy:  resilience.NewPolicy("generate."+inner.Name(), settings, Retryable),
		timeout: timeout,
	}
}

func (r *Resilient) Name() string { return r.inner.Name() }

// BreakerState reports the state of the backend circuit.
func (r *Resilient) BreakerState() resilience.CircuitState {
	return r.policy.Breaker.State()
}

func (r *Resilient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := resilience.Call(ctx, r.policy, func(ctx context.Context) (string, error) {
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		return r.inner.Generate(ctx, prompt)
	})

	outcome := Outcome(err)
	metrics.Generations.WithLabelValues(r.Name(), outcome).Inc()
	metrics.GenerationDuration.WithLabelValues(r.Name()).Observe(time.Since(start).Seconds())
	zap.L().Debug("generate: call finished",
		zap.String("backend", r.Name()),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, err
}
