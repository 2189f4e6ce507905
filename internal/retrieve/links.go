package retrieve

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxLinks = 5

// linkSelectors are tried in order; matches accumulate across selectors.
var linkSelectors = []string{
	"article a",
	".post a",
	".entry-title a",
	"h2 a",
	"h3 a",
	".search-result a",
	".post-title a",
}

// linkSet collects distinct on-site absolute URLs in discovery order.
type linkSet struct {
	site Site
	base *url.URL
	seen map[string]struct{}
	urls []string
}

func newLinkSet(site Site) *linkSet {
	base, _ := url.Parse(site.BaseURL + "/")
	return &linkSet{site: site, base: base, seen: make(map[string]struct{})}
}

func (ls *linkSet) full() bool { return len(ls.urls) >= maxLinks }

// add resolves href against the site base and keeps it when it is on-site
// and new.
func (ls *linkSet) add(href string) {
	href = strings.TrimSpace(href)
	if href == "" || ls.full() {
		return
	}
	ref, err := url.Parse(href)
	if err != nil {
		return
	}
	u := ls.base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return
	}
	if !ls.site.owns(u) {
		return
	}
	u.Fragment = ""
	s := u.String()
	if _, dup := ls.seen[s]; dup {
		return
	}
	ls.seen[s] = struct{}{}
	ls.urls = append(ls.urls, s)
}

// extractLinks runs the result-link selectors over a search page. It returns
// at most five distinct on-site URLs.
func extractLinks(doc *goquery.Document, site Site) []string {
	ls := newLinkSet(site)
	for _, sel := range linkSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				ls.add(href)
			}
		})
		if ls.full() {
			break
		}
	}
	return ls.urls
}

// extractAnchorLinks collects any on-site anchor, skipping fragment-only and
// mail links.
func extractAnchorLinks(doc *goquery.Document, site Site) []string {
	ls := newLinkSet(site)
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return true
		}
		ls.add(href)
		return !ls.full()
	})
	return ls.urls
}
