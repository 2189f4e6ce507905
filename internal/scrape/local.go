package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-assistant/internal/model"
)

const (
	// DefaultUserAgent identifies requests as a desktop browser; the reference
	// site serves a reduced page to obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultTimeout bounds every page fetch.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// LocalOption configures a LocalScraper.
type LocalOption func(*LocalScraper)

// WithUserAgent overrides the browser identification header.
func WithUserAgent(ua string) LocalOption {
	return func(l *LocalScraper) {
		if ua != "" {
			l.userAgent = ua
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) LocalOption {
	return func(l *LocalScraper) {
		if d > 0 {
			l.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) LocalOption {
	return func(l *LocalScraper) {
		l.client = hc
	}
}

// LocalScraper fetches reference pages directly with net/http.
type LocalScraper struct {
	client    *http.Client
	userAgent string
}

// NewLocalScraper creates a LocalScraper with a 10s timeout and a browser
// user agent.
func NewLocalScraper(opts ...LocalOption) *LocalScraper {
	l := &LocalScraper{
		userAgent: DefaultUserAgent,
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *LocalScraper) Name() string           { return SourceLocal }
func (l *LocalScraper) Supports(_ string) bool { return true }

// Scrape fetches a URL and returns its HTML, rejecting anti-bot interstitials.
func (l *LocalScraper) Scrape(ctx context.Context, targetURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: create request")
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "local_http: read body")
	}

	if kind := DetectInterstitial(resp, body); kind != NoInterstitial {
		return nil, eris.Errorf("local_http: interstitial served (%s)", kind)
	}

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("local_http: status %d", resp.StatusCode)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, eris.New("local_http: empty page")
	}

	return &Result{
		Page: model.CrawledPage{
			URL:        resp.Request.URL.String(),
			Title:      extractTitle(body),
			HTML:       string(body),
			StatusCode: resp.StatusCode,
			Format:     model.PageFormatHTML,
		},
		Source: SourceLocal,
	}, nil
}

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// extractTitle pulls the <title> from HTML.
func extractTitle(body []byte) string {
	m := titleRe.FindSubmatch(body)
	if len(m) > 1 {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}
