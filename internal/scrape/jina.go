package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billing-assistant/internal/model"
	"github.com/sells-group/billing-assistant/internal/resilience"
	"github.com/sells-group/billing-assistant/pkg/jina"
)

// JinaAdapter wraps a Jina Reader client as a Scraper. Reader output is
// markdown, so pages it returns carry PageFormatMarkdown.
type JinaAdapter struct {
	client  jina.Client
	breaker *resilience.CircuitBreaker
}

// NewJinaAdapter creates a JinaAdapter from a Jina client.
// Three consecutive failures open the breaker for 60s, during which the
// adapter reports itself unsupported and the chain moves on.
func NewJinaAdapter(client jina.Client) *JinaAdapter {
	return &JinaAdapter{
		client: client,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			FailureThreshold: 3,
			ResetTimeout:     60 * time.Second,
			OnStateChange: func(from, to resilience.CircuitState) {
				zap.L().Warn("scrape: jina breaker state change",
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
	}
}

func (j *JinaAdapter) Name() string { return SourceJina }

// Supports returns true unless the circuit breaker is open.
func (j *JinaAdapter) Supports(_ string) bool {
	return j.breaker.State() != resilience.CircuitOpen
}

// Scrape fetches a URL via Jina Reader and validates the response.
func (j *JinaAdapter) Scrape(ctx context.Context, targetURL string) (*Result, error) {
	return resilience.ExecuteVal(ctx, j.breaker, func(ctx context.Context) (*Result, error) {
		resp, err := j.client.Read(ctx, targetURL)
		if err != nil {
			return nil, err
		}
		if needsFallback(resp) {
			return nil, eris.New("jina: response needs fallback")
		}
		pageURL := resp.Data.URL
		if pageURL == "" {
			pageURL = targetURL
		}
		return &Result{
			Page: model.CrawledPage{
				URL:        pageURL,
				Title:      resp.Data.Title,
				Markdown:   resp.Data.Content,
				StatusCode: resp.Code,
				Format:     model.PageFormatMarkdown,
			},
			Source: SourceJina,
		}, nil
	})
}

var challengeSignatures = []string{
	"checking your browser",
	"enable javascript",
	"please enable cookies",
	"access denied",
	"403 forbidden",
	"just a moment",
	"attention required",
}

// needsFallback reports whether a Jina response lacks usable content.
func needsFallback(resp *jina.ReadResponse) bool {
	if resp == nil {
		return true
	}
	if resp.Code != 0 && resp.Code != 200 {
		return true
	}

	content := strings.TrimSpace(resp.Data.Content)
	if len(content) < 100 {
		return true
	}

	lower := strings.ToLower(content)
	for _, sig := range challengeSignatures {
		if strings.Contains(lower, sig) && len(content) < 1000 {
			return true
		}
	}
	return false
}
