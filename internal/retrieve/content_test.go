package retrieve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billing-assistant/internal/model"
)

func para(n int, c string) string { return strings.Repeat(c, n) }

func TestExtractContent_Strategies(t *testing.T) {
	long1 := "Denial management starts with categorizing every remittance reason code by root cause."
	long2 := "Appeals should cite the payer policy and include supporting clinical documentation."

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "entry content wins over main",
			html: `<main><p>` + long2 + `</p></main><div class="entry-content"><p>` + long1 + `</p></div>`,
			want: long1,
		},
		{
			name: "falls through strategy with only short paragraphs",
			html: `<div class="entry-content"><p>Too short.</p></div><article><p>` + long2 + `</p></article>`,
			want: long2,
		},
		{
			name: "stops once past 100 chars",
			html: `<article><p>` + long1 + `</p><p>` + long2 + `</p><p>` + long1 + `</p></article>`,
			want: long1 + " " + long2,
		},
		{
			name: "two minimum-length paragraphs pass the threshold",
			html: `<main><p>` + para(51, "a") + `</p><p>` + para(51, "b") + `</p><p>` + para(51, "c") + `</p><p>` + para(51, "d") + `</p></main>`,
			want: para(51, "a") + " " + para(51, "b"),
		},
		{
			name: "nothing qualifies",
			html: `<main><p>short</p></main>`,
			want: "",
		},
		{
			name: "whitespace collapsed",
			html: `<div class="content"><p>  Prior   authorization
			requirements differ by payer and by procedure category in most states.</p></div>`,
			want: "Prior authorization requirements differ by payer and by procedure category in most states.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractContent(model.CrawledPage{HTML: tt.html, Format: model.PageFormatHTML})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractContent_ReadsNativeFormat(t *testing.T) {
	fromMarkdown := "Timely filing limits vary by payer, so track submission dates for every claim you send."
	fromHTML := "Eligibility checks before each visit prevent most front-end denials at the clearinghouse."

	tests := []struct {
		name   string
		format model.PageFormat
		want   string
	}{
		{name: "markdown page ignores html", format: model.PageFormatMarkdown, want: fromMarkdown},
		{name: "html page ignores markdown", format: model.PageFormatHTML, want: fromHTML},
		{name: "unset format reads html", want: fromHTML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractContent(model.CrawledPage{
				Markdown: fromMarkdown,
				HTML:     `<main><p>` + fromHTML + `</p></main>`,
				Format:   tt.format,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractContent_Truncates(t *testing.T) {
	huge := para(800, "x")
	got, err := ExtractContent(model.CrawledPage{HTML: `<main><p>` + huge + `</p></main>`})
	require.NoError(t, err)
	assert.Equal(t, para(500, "x")+"...", got)
}

func TestMarkdownParagraphs(t *testing.T) {
	md := "# Title\n\n![logo](x.png)\n\n[Home](https://billingparadise.com)\n\nFirst line\ncontinues here.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n> quote\n\nSecond paragraph."
	paras, err := markdownParagraphs(md)
	require.NoError(t, err)
	assert.Equal(t, []string{"First line continues here.", "Second paragraph."}, paras)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "é...", truncate("éé", 1))
}
