package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-assistant/pkg/anthropic"
)

// AnthropicGenerator generates answers with the Anthropic Messages API. The
// assembled prompt is sent as a single user message.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic creates an AnthropicGenerator.
func NewAnthropic(client anthropic.Client, model string, maxTokens int64) *AnthropicGenerator {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicGenerator{client: client, model: model, maxTokens: maxTokens}
}

func (g *AnthropicGenerator) Name() string { return "anthropic" }

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		var se *anthropic.StatusError
		if errors.As(err, &se) {
			return "", &BackendError{Backend: g.Name(), StatusCode: se.StatusCode, Body: se.Body}
		}
		return "", eris.Wrap(err, "generate: anthropic")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &MalformedResponseError{Backend: g.Name(), Body: "stop_reason=" + resp.StopReason}
	}
	return text, nil
}
