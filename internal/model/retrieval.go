package model

import "unicode/utf8"

// Retrieval limits.
const (
	MaxAdditionalURLs = 3
	MaxContentChars   = 500
	EllipsisMarker    = "..."
)

// RetrievalResult is the enrichment gathered from the reference site for a
// single query. It is built per request and never persisted.
type RetrievalResult struct {
	PrimaryURL     string   `json:"primaryUrl,omitempty"`
	AdditionalURLs []string `json:"additionalUrls"`
	Content        string   `json:"content"`
}

// HasContent reports whether the result carries an excerpt worth injecting
// into a prompt.
func (r *RetrievalResult) HasContent() bool {
	return r != nil && r.Content != ""
}

// GeneratedAnswer is the final output of the assistant. Text carries the
// "###" delimiter convention untouched.
type GeneratedAnswer struct {
	Text           string   `json:"text"`
	SourceURL      string   `json:"sourceUrl,omitempty"`
	AdditionalURLs []string `json:"additionalUrls"`
}

// Capped returns a copy of r within the retrieval limits: at most
// MaxAdditionalURLs additional URLs (never nil) and content truncated to
// MaxContentChars characters plus the ellipsis marker.
func (r RetrievalResult) Capped() RetrievalResult {
	if len(r.AdditionalURLs) > MaxAdditionalURLs {
		r.AdditionalURLs = r.AdditionalURLs[:MaxAdditionalURLs]
	}
	if r.AdditionalURLs == nil {
		r.AdditionalURLs = []string{}
	}
	r.Content = Truncate(r.Content, MaxContentChars)
	return r
}

// Truncate cuts s to limit characters and appends the ellipsis marker when
// anything was removed.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + EllipsisMarker
}
