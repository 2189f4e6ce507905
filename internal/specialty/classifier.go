package specialty

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/billing-assistant/internal/model"
)

// fold returns a caseless form of s suitable for substring matching.
// cases.Caser is stateful, so a fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

type compiledSpecialty struct {
	specialty model.Specialty
	keywords  []string
}

// Classifier maps a free-text query to at most one specialty. It is safe for
// concurrent use; its state is fixed at construction.
type Classifier struct {
	entries []compiledSpecialty
}

// NewClassifier compiles the table into a classifier. Table order and each
// specialty's keyword order are preserved.
func NewClassifier(table Table) *Classifier {
	entries := make([]compiledSpecialty, 0, len(table))
	for _, s := range table {
		kw := make([]string, 0, len(s.Keywords))
		for _, k := range s.Keywords {
			if k = fold(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		entries = append(entries, compiledSpecialty{specialty: s, keywords: kw})
	}
	return &Classifier{entries: entries}
}

// Classify returns the first specialty, in declaration order, that has a
// keyword appearing as a case-insensitive substring of query. The second
// return value is false when nothing matches.
func (c *Classifier) Classify(query string) (*model.Specialty, bool) {
	q := fold(query)
	for i := range c.entries {
		e := &c.entries[i]
		for _, kw := range e.keywords {
			if strings.Contains(q, kw) {
				zap.L().Debug("specialty: matched",
					zap.String("specialty", e.specialty.Key),
					zap.String("keyword", kw),
				)
				s := e.specialty
				return &s, true
			}
		}
	}
	return nil, false
}
