package model

// PageFormat describes how a fetched page body is encoded.
type PageFormat string

const (
	PageFormatHTML     PageFormat = "html"
	PageFormatMarkdown PageFormat = "markdown"
)

// CrawledPage represents a single fetched page.
type CrawledPage struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Markdown   string     `json:"markdown,omitempty"`
	HTML       string     `json:"html,omitempty"`
	StatusCode int        `json:"status_code"`
	Format     PageFormat `json:"format"`
}

// Body returns the page content in its native format.
func (p CrawledPage) Body() string {
	if p.Format == PageFormatMarkdown {
		return p.Markdown
	}
	return p.HTML
}
