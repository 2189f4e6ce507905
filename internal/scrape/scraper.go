package scrape

import (
	"context"

	"github.com/sells-group/billing-assistant/internal/model"
)

// Fetch sources recorded on a Result.
const (
	SourceLocal = "local_http"
	SourceJina  = "jina"
)

// Result is one fetched reference page. Source names the fetcher that
// produced it and is only used for logging.
type Result struct {
	Page   model.CrawledPage
	Source string
}

// Scraper fetches one reference-site URL. Supports lets a Chain skip
// fetchers that cannot reach a given host.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*Result, error)
	Name() string
	Supports(url string) bool
}
