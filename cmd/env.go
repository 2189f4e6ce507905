package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billing-assistant/internal/assistant"
	"github.com/sells-group/billing-assistant/internal/config"
	"github.com/sells-group/billing-assistant/internal/generate"
	"github.com/sells-group/billing-assistant/internal/prompt"
	"github.com/sells-group/billing-assistant/internal/resilience"
	"github.com/sells-group/billing-assistant/internal/retrieve"
	"github.com/sells-group/billing-assistant/internal/scrape"
	"github.com/sells-group/billing-assistant/internal/specialty"
	"github.com/sells-group/billing-assistant/internal/store"
	anthropicpkg "github.com/sells-group/billing-assistant/pkg/anthropic"
	"github.com/sells-group/billing-assistant/pkg/jina"
	"github.com/sells-group/billing-assistant/pkg/ollama"
)

// appEnv holds the collaborators shared by the serve, ask, search and
// classify commands.
type appEnv struct {
	Classifier *specialty.Classifier
	Retriever  *retrieve.Retriever
	Generator  *generate.Resilient
	Assistant  *assistant.Assistant
	Store      store.Store // nil unless opened
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates cfg for mode and builds the assistant. The store is
// opened and migrated only when withStore is set.
func initEnv(ctx context.Context, c *config.Config, mode string, withStore bool) (*appEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	table, err := specialty.Resolve(c.Specialties.File)
	if err != nil {
		return nil, err
	}
	classifier := specialty.NewClassifier(table)

	retriever := newRetriever(c)

	gen, err := newGenerator(c)
	if err != nil {
		return nil, err
	}

	env := &appEnv{
		Classifier: classifier,
		Retriever:  retriever,
		Generator:  gen,
		Assistant: assistant.New(classifier, retriever, gen, assistant.Options{
			Prompt: prompt.Builder{
				SiteDomain:   retriever.Site().Domain,
				SiteName:     retriever.Site().Name,
				HistoryLimit: c.Assistant.HistoryLimit,
			},
			IncludeErrorDetail: c.Assistant.IncludeErrorDetail,
		}),
	}

	if withStore {
		st, err := store.Open(ctx, c.Store.Driver, c.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if st != nil {
			if err := st.Migrate(ctx); err != nil {
				_ = st.Close()
				return nil, eris.Wrap(err, "migrate store")
			}
		}
		env.Store = st
	}

	return env, nil
}

// newRetriever wires the site fetchers. Specialty pages fall back to Jina
// Reader when a key is configured; site search always uses plain HTTP.
func newRetriever(c *config.Config) *retrieve.Retriever {
	local := scrape.NewLocalScraper(
		scrape.WithUserAgent(c.Site.UserAgent),
		scrape.WithTimeout(time.Duration(c.Site.TimeoutSecs)*time.Second),
	)

	var pages scrape.Scraper = local
	if c.Jina.Key != "" {
		jinaClient := jina.NewClient(c.Jina.Key, jina.WithBaseURL(c.Jina.BaseURL))
		pages = scrape.NewChain(local, scrape.NewJinaAdapter(jinaClient))
		zap.L().Debug("jina reader fallback enabled")
	}

	return retrieve.New(retrieve.Site{
		BaseURL: c.Site.BaseURL,
		Domain:  c.Site.Domain,
		Name:    c.Site.Name,
	}, pages, local)
}

// newGenerator builds the configured backend behind retries and a breaker.
func newGenerator(c *config.Config) (*generate.Resilient, error) {
	var inner generate.Generator
	switch c.Generation.Backend {
	case "ollama", "":
		client := ollama.NewClient(
			ollama.WithBaseURL(c.Ollama.BaseURL),
			ollama.WithModel(c.Ollama.Model),
		)
		inner = generate.NewOllama(client, c.Ollama.Model)
	case "anthropic":
		client := anthropicpkg.NewClient(c.Anthropic.Key)
		inner = generate.NewAnthropic(client, c.Anthropic.Model, c.Anthropic.MaxTokens)
	default:
		return nil, eris.Errorf("unknown generation backend %q", c.Generation.Backend)
	}

	settings := resilience.PolicySettings{
		MaxAttempts:      c.Generation.Retry.MaxAttempts,
		InitialBackoffMs: c.Generation.Retry.InitialBackoffMs,
		MaxBackoffMs:     c.Generation.Retry.MaxBackoffMs,
		FailureThreshold: c.Generation.Circuit.FailureThreshold,
		ResetTimeoutSecs: c.Generation.Circuit.ResetTimeoutSecs,
	}
	return generate.NewResilient(inner, settings, time.Duration(c.Generation.TimeoutSecs)*time.Second), nil
}
