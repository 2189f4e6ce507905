package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/billing-assistant/internal/prompt"
)

// Config holds the full application configuration.
type Config struct {
	Site        SiteConfig       `yaml:"site" mapstructure:"site"`
	Specialties SpecialtyConfig  `yaml:"specialties" mapstructure:"specialties"`
	Jina        JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Generation  GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Ollama      OllamaConfig     `yaml:"ollama" mapstructure:"ollama"`
	Anthropic   AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Assistant   AssistantConfig  `yaml:"assistant" mapstructure:"assistant"`
	Store       StoreConfig      `yaml:"store" mapstructure:"store"`
	Server      ServerConfig     `yaml:"server" mapstructure:"server"`
	Log         LogConfig        `yaml:"log" mapstructure:"log"`
}

// SiteConfig describes the reference site that retrieval reads from.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Domain      string `yaml:"domain" mapstructure:"domain"`
	Name        string `yaml:"name" mapstructure:"name"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// SpecialtyConfig points at an optional specialty table override.
type SpecialtyConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// JinaConfig holds Jina AI Reader settings. An empty key disables the
// reader fallback.
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GenerationConfig selects and hardens the text generation backend.
type GenerationConfig struct {
	Backend     string        `yaml:"backend" mapstructure:"backend"`
	TimeoutSecs int           `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retry       RetryConfig   `yaml:"retry" mapstructure:"retry"`
	Circuit     CircuitConfig `yaml:"circuit" mapstructure:"circuit"`
}

// RetryConfig configures retries of transient generation failures.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
}

// CircuitConfig configures the generation circuit breaker.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// OllamaConfig holds local model server settings.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// AssistantConfig configures prompt assembly and failure answers.
type AssistantConfig struct {
	HistoryLimit       int  `yaml:"history_limit" mapstructure:"history_limit"`
	IncludeErrorDetail bool `yaml:"include_error_detail" mapstructure:"include_error_detail"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	CORSOrigins    []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimit      int      `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateWindowSecs int      `yaml:"rate_window_secs" mapstructure:"rate_window_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("site.base_url", "https://www.billingparadise.com")
	v.SetDefault("site.domain", "billingparadise.com")
	v.SetDefault("site.name", "BillingParadise")
	v.SetDefault("site.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("site.timeout_secs", 10)
	v.SetDefault("specialties.file", "")
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("generation.backend", "ollama")
	v.SetDefault("generation.timeout_secs", 60)
	v.SetDefault("generation.retry.max_attempts", 3)
	v.SetDefault("generation.retry.initial_backoff_ms", 500)
	v.SetDefault("generation.retry.max_backoff_ms", 10000)
	v.SetDefault("generation.circuit.failure_threshold", 5)
	v.SetDefault("generation.circuit.reset_timeout_secs", 30)
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "qwen:0.5b")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("assistant.history_limit", 10)
	v.SetDefault("assistant.include_error_detail", false)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "assistant.db")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.rate_window_secs", 900)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "serve", "ask", "search" and "classify".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		if c.Server.RateLimit > 0 && c.Server.RateWindowSecs <= 0 {
			errs = append(errs, "server.rate_window_secs must be > 0 when rate limiting")
		}
		switch strings.ToLower(c.Store.Driver) {
		case "", "none":
		case "sqlite", "postgres", "postgresql":
			if c.Store.DatabaseURL == "" {
				errs = append(errs, "store.database_url is required")
			}
		default:
			errs = append(errs, "store.driver must be sqlite, postgres or none")
		}
		errs = append(errs, c.generationErrors()...)
	case "ask":
		errs = append(errs, c.generationErrors()...)
	case "search", "classify":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Site.BaseURL == "" {
		errs = append(errs, "site.base_url is required")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) generationErrors() []string {
	var errs []string
	switch c.Generation.Backend {
	case "ollama":
		if c.Ollama.BaseURL == "" {
			errs = append(errs, "ollama.base_url is required")
		}
	case "anthropic":
		if c.Anthropic.Key == "" {
			errs = append(errs, "anthropic.key is required")
		}
	default:
		errs = append(errs, "generation.backend must be ollama or anthropic")
	}
	if c.Generation.TimeoutSecs <= 0 {
		errs = append(errs, "generation.timeout_secs must be > 0")
	}
	if c.Assistant.HistoryLimit < 0 || c.Assistant.HistoryLimit > prompt.DefaultHistoryLimit {
		errs = append(errs, fmt.Sprintf("assistant.history_limit must be between 0 and %d", prompt.DefaultHistoryLimit))
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
