package retrieve

import (
	"net/url"
	"strings"
)

// Site describes the external reference site that enrichment is drawn from.
type Site struct {
	// BaseURL is the site root used for search and fallback links.
	BaseURL string
	// Domain is the registrable domain links must belong to.
	Domain string
	// Name is the display name used in generated descriptions.
	Name string
	// RelatedURLs are attached to every specialty result.
	RelatedURLs []string
}

// DefaultSite returns the BillingParadise site definition.
func DefaultSite() Site {
	return Site{
		BaseURL: "https://www.billingparadise.com",
		Domain:  "billingparadise.com",
		Name:    "BillingParadise",
		RelatedURLs: []string{
			"https://billingparadise.com/medical-billing-services",
			"https://billingparadise.com/revenue-cycle-management",
			"https://billingparadise.com/medical-coding-services",
		},
	}
}

func (s Site) withDefaults() Site {
	d := DefaultSite()
	if s.BaseURL == "" {
		s.BaseURL = d.BaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.Domain == "" {
		if u, err := url.Parse(s.BaseURL); err == nil {
			s.Domain = strings.TrimPrefix(u.Hostname(), "www.")
		}
	}
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.RelatedURLs == nil {
		s.RelatedURLs = d.RelatedURLs
	}
	return s
}

// SearchURL returns the full-text search URL for a keyword string.
func (s Site) SearchURL(keywords string) string {
	return s.BaseURL + "/?s=" + url.QueryEscape(keywords)
}

// owns reports whether u is on the site's domain or one of its subdomains.
func (s Site) owns(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	return host == s.Domain || strings.HasSuffix(host, "."+s.Domain)
}
