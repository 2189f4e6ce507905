package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-assistant/pkg/ollama"
)

// replyFields are checked in priority order; the first holding a string wins.
var replyFields = []string{"response", "output", "content"}

// extractText applies the reply extraction rules.
func extractText(reply ollama.Reply) (string, bool) {
	for _, f := range replyFields {
		if s, ok := reply.String(f); ok {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// OllamaGenerator generates answers with a fixed Ollama model.
type OllamaGenerator struct {
	client ollama.Client
	model  string
}

// NewOllama creates an OllamaGenerator. An empty model uses the client default.
func NewOllama(client ollama.Client, model string) *OllamaGenerator {
	return &OllamaGenerator{client: client, model: model}
}

func (g *OllamaGenerator) Name() string { return "ollama" }

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := g.client.Generate(ctx, ollama.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		var se *ollama.StatusError
		if errors.As(err, &se) {
			return "", &BackendError{Backend: g.Name(), StatusCode: se.StatusCode, Body: se.Body}
		}
		var me *ollama.MalformedError
		if errors.As(err, &me) {
			return "", &MalformedResponseError{Backend: g.Name(), Body: me.Body}
		}
		return "", eris.Wrap(err, "generate: ollama")
	}

	text, ok := extractText(reply)
	if !ok {
		raw, _ := json.Marshal(reply)
		return "", &MalformedResponseError{Backend: g.Name(), Body: string(raw)}
	}
	return text, nil
}
