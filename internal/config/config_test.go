package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.billingparadise.com", cfg.Site.BaseURL)
	assert.Equal(t, "billingparadise.com", cfg.Site.Domain)
	assert.Equal(t, "BillingParadise", cfg.Site.Name)
	assert.Equal(t, 10, cfg.Site.TimeoutSecs)
	assert.Contains(t, cfg.Site.UserAgent, "Mozilla/5.0")
	assert.Empty(t, cfg.Specialties.File)
	assert.Equal(t, "https://r.jina.ai", cfg.Jina.BaseURL)
	assert.Equal(t, "ollama", cfg.Generation.Backend)
	assert.Equal(t, 60, cfg.Generation.TimeoutSecs)
	assert.Equal(t, 3, cfg.Generation.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.Generation.Circuit.FailureThreshold)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "qwen:0.5b", cfg.Ollama.Model)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 10, cfg.Assistant.HistoryLimit)
	assert.False(t, cfg.Assistant.IncludeErrorDetail)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, 900, cfg.Server.RateWindowSecs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
generation:
  backend: anthropic
  retry:
    max_attempts: 1
anthropic:
  key: sk-ant-test
log:
  level: debug
  format: console
server:
  port: 9090
  cors_origins:
    - https://app.example.com
assistant:
  include_error_detail: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Generation.Backend)
	assert.Equal(t, 1, cfg.Generation.Retry.MaxAttempts)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Assistant.IncludeErrorDetail)
	// Defaults still apply for unset values
	assert.Equal(t, 500, cfg.Generation.Retry.InitialBackoffMs)
	assert.Equal(t, "qwen:0.5b", cfg.Ollama.Model)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("ASSISTANT_STORE_DRIVER", "postgres")
	t.Setenv("ASSISTANT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("ASSISTANT_SERVER_PORT", "3000")
	t.Setenv("ASSISTANT_OLLAMA_MODEL", "llama3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "llama3", cfg.Ollama.Model)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with the defaults needed by every mode.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Site.BaseURL = "https://www.billingparadise.com"
	cfg.Generation.Backend = "ollama"
	cfg.Generation.TimeoutSecs = 60
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Assistant.HistoryLimit = 10
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "assistant.db"
	cfg.Server.Port = 3001
	cfg.Server.RateLimit = 100
	cfg.Server.RateWindowSecs = 900
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "serve defaults", mode: "serve", mutate: func(*Config) {}},
		{name: "ask defaults", mode: "ask", mutate: func(*Config) {}},
		{name: "search ignores backend", mode: "search", mutate: func(c *Config) { c.Generation.Backend = "" }},
		{name: "classify", mode: "classify", mutate: func(*Config) {}},
		{name: "store disabled", mode: "serve", mutate: func(c *Config) {
			c.Store.Driver = "none"
			c.Store.DatabaseURL = ""
		}},
		{name: "rate limit disabled", mode: "serve", mutate: func(c *Config) {
			c.Server.RateLimit = 0
			c.Server.RateWindowSecs = 0
		}},
		{name: "invalid port", mode: "serve", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port must be > 0"},
		{name: "missing window", mode: "serve", mutate: func(c *Config) { c.Server.RateWindowSecs = 0 }, wantErr: "server.rate_window_secs"},
		{name: "unknown driver", mode: "serve", mutate: func(c *Config) { c.Store.Driver = "mysql" }, wantErr: "store.driver must be"},
		{name: "missing dsn", mode: "serve", mutate: func(c *Config) { c.Store.DatabaseURL = "" }, wantErr: "store.database_url is required"},
		{name: "anthropic without key", mode: "ask", mutate: func(c *Config) { c.Generation.Backend = "anthropic" }, wantErr: "anthropic.key is required"},
		{name: "unknown backend", mode: "ask", mutate: func(c *Config) { c.Generation.Backend = "gpt" }, wantErr: "generation.backend must be"},
		{name: "zero timeout", mode: "ask", mutate: func(c *Config) { c.Generation.TimeoutSecs = 0 }, wantErr: "generation.timeout_secs"},
		{name: "history limit at max", mode: "ask", mutate: func(c *Config) { c.Assistant.HistoryLimit = 10 }},
		{name: "history limit above max", mode: "ask", mutate: func(c *Config) { c.Assistant.HistoryLimit = 50 }, wantErr: "assistant.history_limit must be between 0 and 10"},
		{name: "negative history limit", mode: "ask", mutate: func(c *Config) { c.Assistant.HistoryLimit = -1 }, wantErr: "assistant.history_limit"},
		{name: "missing site", mode: "search", mutate: func(c *Config) { c.Site.BaseURL = "" }, wantErr: "site.base_url is required"},
		{name: "unknown mode", mode: "unknown", mutate: func(*Config) {}, wantErr: "unknown mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)

			err := cfg.Validate(tt.mode)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0
	cfg.Generation.Backend = "anthropic"

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
	assert.Contains(t, err.Error(), "anthropic.key is required")
}

func TestLoadEnvSecrets(t *testing.T) {
	chdirTemp(t)

	t.Setenv("ASSISTANT_ANTHROPIC_KEY", "sk-ant-env")
	t.Setenv("ASSISTANT_JINA_KEY", "jina-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-env", cfg.Anthropic.Key)
	assert.Equal(t, "jina-env", cfg.Jina.Key)
}
