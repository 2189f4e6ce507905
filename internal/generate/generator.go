// Package generate sends prompts to a text-generation backend and normalizes
// the reply to a plain answer string.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/sells-group/billing-assistant/internal/resilience"
)

// Generator turns a prompt into answer text. The text is returned with the
// delimiter convention untouched.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// BackendError reports a non-success status from the generation backend.
type BackendError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generate: %s returned status %d: %s", e.Backend, e.StatusCode, e.Body)
}

// MalformedResponseError reports a success reply with no recognizable text.
type MalformedResponseError struct {
	Backend string
	Body    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("generate: %s reply has no recognizable text field", e.Backend)
}

// Retryable reports whether a generation error is worth another attempt:
// transient statuses and network failures are, malformed replies never are.
func Retryable(err error) bool {
	var me *MalformedResponseError
	if errors.As(err, &me) {
		return false
	}
	var be *BackendError
	if errors.As(err, &be) {
		return resilience.IsTransientHTTPStatus(be.StatusCode)
	}
	return resilience.IsTransient(err)
}

// Outcome classifies a generation result for metrics and logs.
func Outcome(err error) string {
	var (
		be *BackendError
		me *MalformedResponseError
	)
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, resilience.ErrCircuitOpen):
		return "circuit_open"
	case errors.As(err, &be):
		return "backend_error"
	case errors.As(err, &me):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
