package retrieve

import (
	"strings"
	"unicode/utf8"

	"github.com/sells-group/billing-assistant/internal/model"
)

const (
	minParagraphChars = 50
	enoughContent     = 100
	maxParagraphs     = 3
	maxExcerptChars   = 300
)

func truncate(s string, limit int) string { return model.Truncate(s, limit) }

// collapseSpace trims s and reduces internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// assemble applies the paragraph selection rule: paragraphs longer than 50
// characters qualify, at most three are taken, and collection stops once the
// joined text passes 100 characters.
func assemble(paragraphs []string) string {
	var parts []string
	total := 0
	for _, p := range paragraphs {
		if utf8.RuneCountInString(p) <= minParagraphChars {
			continue
		}
		parts = append(parts, p)
		total += utf8.RuneCountInString(p) + 1
		if len(parts) == maxParagraphs || total > enoughContent {
			break
		}
	}
	return truncate(strings.Join(parts, " "), model.MaxContentChars)
}

func qualifies(paragraphs []string) bool {
	for _, p := range paragraphs {
		if utf8.RuneCountInString(p) > minParagraphChars {
			return true
		}
	}
	return false
}
