// Package retrieve gathers enrichment content for a query from the reference
// site. Every failure degrades to a usable result; nothing is returned to the
// caller as an error.
package retrieve

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/billing-assistant/internal/metrics"
	"github.com/sells-group/billing-assistant/internal/model"
	"github.com/sells-group/billing-assistant/internal/scrape"
)

// Retriever implements the specialty-page and site-search retrieval paths.
type Retriever struct {
	site   Site
	pages  scrape.Scraper
	search scrape.Scraper
}

// New creates a Retriever. pages fetches specialty reference pages and may be
// a chain with a reader fallback; search fetches the site's HTML search page.
func New(site Site, pages, search scrape.Scraper) *Retriever {
	return &Retriever{
		site:   site.withDefaults(),
		pages:  pages,
		search: search,
	}
}

// Site returns the effective site definition.
func (r *Retriever) Site() Site { return r.site }

// Retrieve returns enrichment for query. When specialty is non-nil the
// specialty page is used; otherwise the site search runs. The result always
// has a primary URL.
func (r *Retriever) Retrieve(ctx context.Context, query string, specialty *model.Specialty) model.RetrievalResult {
	var (
		res  model.RetrievalResult
		tier string
	)
	if specialty != nil {
		res, tier = r.fromSpecialty(ctx, *specialty)
	} else {
		res, tier = r.fromSearch(ctx, query)
	}
	metrics.RetrievalTier.WithLabelValues(tier).Inc()
	return res.Capped()
}

func (r *Retriever) fromSpecialty(ctx context.Context, sp model.Specialty) (model.RetrievalResult, string) {
	res := model.RetrievalResult{
		PrimaryURL:     sp.URL,
		AdditionalURLs: append([]string(nil), r.site.RelatedURLs...),
	}
	log := zap.L().With(zap.String("specialty", sp.Key), zap.String("url", sp.URL))

	page, err := r.pages.Scrape(ctx, sp.URL)
	if err != nil {
		log.Warn("retrieve: specialty page fetch failed", zap.Error(err))
		res.Content = fmt.Sprintf("Learn more about %s at %s.", sp.Name, r.site.Name)
		return res, metrics.TierSpecialtyFallback
	}

	content, err := ExtractContent(page.Page)
	if err != nil {
		log.Warn("retrieve: specialty page parse failed", zap.Error(err))
		res.Content = fmt.Sprintf("Learn more about %s at %s.", sp.Name, r.site.Name)
		return res, metrics.TierSpecialtyFallback
	}
	if content == "" {
		log.Debug("retrieve: specialty page had no qualifying paragraphs", zap.String("source", page.Source))
		res.Content = fmt.Sprintf("Information about %s from %s.", sp.Name, r.site.Name)
		return res, metrics.TierSpecialtyFallback
	}

	log.Debug("retrieve: specialty page content", zap.String("source", page.Source), zap.Int("chars", len(content)))
	res.Content = content
	return res, metrics.TierSpecialtyPage
}

func (r *Retriever) fromSearch(ctx context.Context, query string) (model.RetrievalResult, string) {
	keywords := ExtractKeywords(query)
	log := zap.L().With(zap.String("keywords", keywords))

	if strings.TrimSpace(keywords) != "" {
		searchURL := r.site.SearchURL(keywords)
		page, err := r.search.Scrape(ctx, searchURL)
		if err != nil {
			log.Warn("retrieve: site search failed", zap.String("url", searchURL), zap.Error(err))
		} else if res, tier, ok := r.parseSearch(page.Page.HTML); ok {
			log.Debug("retrieve: site search results", zap.String("tier", tier), zap.Int("urls", 1+len(res.AdditionalURLs)))
			return res, tier
		} else {
			log.Debug("retrieve: site search yielded no links")
		}
	}

	res, matched := fallback(keywords, r.site.BaseURL)
	if matched {
		return res, metrics.TierDictionary
	}
	return res, metrics.TierDefault
}

func (r *Retriever) parseSearch(html string) (model.RetrievalResult, string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.RetrievalResult{}, "", false
	}

	tier := metrics.TierSearch
	urls := extractLinks(doc, r.site)
	if len(urls) == 0 {
		tier = metrics.TierSearchAnchor
		urls = extractAnchorLinks(doc, r.site)
	}
	if len(urls) == 0 {
		return model.RetrievalResult{}, "", false
	}

	return model.RetrievalResult{
		PrimaryURL:     urls[0],
		AdditionalURLs: urls[1:],
		Content:        searchExcerpt(doc),
	}, tier, true
}
