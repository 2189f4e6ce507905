package retrieve

import (
	"strings"

	"golang.org/x/text/cases"
)

// domainTerms is scanned in order; the first term present in the query
// becomes the search keyword string.
var domainTerms = []string{
	"rcm", "revenue cycle", "medical coding", "icd", "cpt", "billing",
	"claims", "denials", "healthcare", "medical", "coding", "revenue",
	"modifier", "hcpcs", "denial", "appeal", "payer", "reimbursement",
}

// ExtractKeywords reduces a query to a short search string: the first domain
// term it contains, or else its first three words.
func ExtractKeywords(query string) string {
	q := cases.Fold().String(query)
	for _, term := range domainTerms {
		if strings.Contains(q, term) {
			return term
		}
	}
	words := strings.Fields(query)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
