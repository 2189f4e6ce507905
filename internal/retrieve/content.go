package retrieve

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sells-group/billing-assistant/internal/model"
)

// contentStrategy yields candidate paragraphs from a parsed page.
type contentStrategy struct {
	name       string
	paragraphs func(doc *goquery.Document) []string
}

func selectorStrategy(selector string) contentStrategy {
	return contentStrategy{
		name: selector,
		paragraphs: func(doc *goquery.Document) []string {
			var out []string
			doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
				if t := collapseSpace(s.Text()); t != "" {
					out = append(out, t)
				}
			})
			return out
		},
	}
}

// contentStrategies are tried in order; the first to yield a qualifying
// paragraph wins.
var contentStrategies = []contentStrategy{
	selectorStrategy(".entry-content p"),
	selectorStrategy("article p"),
	selectorStrategy(".post-content p"),
	selectorStrategy(".content p"),
	selectorStrategy("main p"),
}

// ExtractContent returns the enrichment excerpt for a fetched page, or ""
// when no strategy finds a qualifying paragraph.
func ExtractContent(page model.CrawledPage) (string, error) {
	body := page.Body()
	if page.Format == model.PageFormatMarkdown {
		paras, err := markdownParagraphs(body)
		if err != nil {
			return "", err
		}
		return assemble(paras), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "retrieve: parse html")
	}
	return extractFromDocument(doc), nil
}

func extractFromDocument(doc *goquery.Document) string {
	for _, st := range contentStrategies {
		paras := st.paragraphs(doc)
		if qualifies(paras) {
			return assemble(paras)
		}
	}
	return ""
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// markdownParagraphs renders reader output and returns its top-level prose
// paragraphs. Paragraphs inside quotes, lists or tables are skipped, as are
// paragraphs holding nothing but links or images.
func markdownParagraphs(src string) ([]string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, eris.Wrap(err, "retrieve: render markdown")
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, eris.Wrap(err, "retrieve: parse rendered markdown")
	}

	var out []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("blockquote, li, table").Length() > 0 {
			return
		}
		text := collapseSpace(s.Text())
		if text == "" || text == collapseSpace(s.Find("a").Text()) {
			return
		}
		out = append(out, text)
	})
	return out, nil
}

// searchExcerpt returns the first excerpt near the first search result,
// capped at 300 characters.
func searchExcerpt(doc *goquery.Document) string {
	first := doc.Find("article").First()
	if first.Length() == 0 {
		first = doc.Find(".post").First()
	}
	if first.Length() == 0 {
		return ""
	}
	text := collapseSpace(first.Find(".excerpt, .entry-summary, p").First().Text())
	return truncate(text, maxExcerptChars)
}
