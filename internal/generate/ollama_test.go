package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billing-assistant/pkg/ollama"
)

func ollamaServer(t *testing.T, status int, body string) *OllamaGenerator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollama.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen:0.5b", req.Model)
		assert.False(t, req.Stream)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewOllama(ollama.NewClient(ollama.WithBaseURL(srv.URL)), "qwen:0.5b")
}

func TestOllamaGenerate_ReturnsResponseUnchanged(t *testing.T) {
	g := ollamaServer(t, http.StatusOK, `{"response": "Hypertension is coded I10. ### Would you like ICD-10 coding tips?"}`)

	got, err := g.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "Hypertension is coded I10. ### Would you like ICD-10 coding tips?", got)
}

func TestOllamaGenerate_FieldPriority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response first", `{"content":"c","output":"o","response":"r"}`, "r"},
		{"output second", `{"content":"c","output":"o"}`, "o"},
		{"content last", `{"content":"  c  "}`, "c"},
		{"non-string response skipped", `{"response":{"text":"x"},"output":"o"}`, "o"},
		{"empty string still present", `{"response":"","output":"o"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ollamaServer(t, http.StatusOK, tt.body)
			got, err := g.Generate(context.Background(), "p")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOllamaGenerate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown fields", `{"foo": "bar"}`},
		{"not json", `<html>gateway</html>`},
		{"numeric response", `{"response": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ollamaServer(t, http.StatusOK, tt.body)
			_, err := g.Generate(context.Background(), "p")

			var me *MalformedResponseError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Equal(t, "ollama", me.Backend)
			assert.False(t, Retryable(err))
			assert.Equal(t, "malformed", Outcome(err))
		})
	}
}

func TestOllamaGenerate_BackendError(t *testing.T) {
	g := ollamaServer(t, http.StatusInternalServerError, `{"error":"model not loaded"}`)

	_, err := g.Generate(context.Background(), "p")

	var be *BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, `{"error":"model not loaded"}`, be.Body)
	assert.True(t, Retryable(err))
	assert.Equal(t, "backend_error", Outcome(err))
}

func TestOllamaGenerate_BadRequestNotRetryable(t *testing.T) {
	g := ollamaServer(t, http.StatusBadRequest, `{"error":"bad model"}`)
	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.False(t, Retryable(err))
}
