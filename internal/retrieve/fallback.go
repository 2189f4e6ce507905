package retrieve

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/billing-assistant/internal/model"
)

type fallbackEntry struct {
	category   string
	primary    string
	additional [model.MaxAdditionalURLs]string
	content    string
}

// fallbackEntries is matched in order against the keyword string.
var fallbackEntries = []fallbackEntry{
	{
		category:   "rcm",
		primary:    "/revenue-cycle-management/",
		additional: [3]string{"/rcm-best-practices/", "/medical-billing-services/", "/healthcare-consulting/"},
		content:    "Revenue Cycle Management (RCM) is crucial for healthcare organizations to optimize financial performance and ensure timely reimbursement.",
	},
	{
		category:   "medical coding",
		primary:    "/medical-coding-services/",
		additional: [3]string{"/icd-10-coding/", "/cpt-coding/", "/medical-coding-audit/"},
		content:    "Medical coding requires precision and up-to-date knowledge of ICD-10, CPT, and HCPCS codes to ensure accurate billing and compliance.",
	},
	{
		category:   "claims",
		primary:    "/claims-processing/",
		additional: [3]string{"/claim-denial-management/", "/claim-appeals/", "/medical-billing-services/"},
		content:    "Efficient claims processing is essential for maintaining cash flow and reducing denials in healthcare practices.",
	},
	{
		category:   "denials",
		primary:    "/denial-management/",
		additional: [3]string{"/denial-prevention/", "/appeal-services/", "/revenue-cycle-management/"},
		content:    "Effective denial management involves identifying root causes, implementing preventive measures, and developing strong appeal processes.",
	},
	{
		category:   "billing",
		primary:    "/medical-billing-services/",
		additional: [3]string{"/billing-compliance/", "/revenue-cycle-management/", "/credentialing-services/"},
		content:    "Medical billing requires attention to detail, compliance with regulations, and efficient processes to maximize revenue.",
	},
}

var defaultEntry = fallbackEntry{
	category:   "default",
	primary:    "/medical-billing-services/",
	additional: [3]string{"/revenue-cycle-management/", "/medical-coding-services/", "/healthcare-consulting/"},
	content:    "Explore our comprehensive healthcare services for medical coding, RCM, and billing solutions.",
}

func (e fallbackEntry) result(base string) model.RetrievalResult {
	add := make([]string, 0, len(e.additional))
	for _, p := range e.additional {
		add = append(add, base+p)
	}
	return model.RetrievalResult{
		PrimaryURL:     base + e.primary,
		AdditionalURLs: add,
		Content:        e.content,
	}
}

// fallback returns the canned result for the first category contained in
// keywords, or the generic default. ok is false for the default.
func fallback(keywords, base string) (model.RetrievalResult, bool) {
	k := cases.Fold().String(keywords)
	for _, e := range fallbackEntries {
		if strings.Contains(k, e.category) {
			return e.result(base), true
		}
	}
	return defaultEntry.result(base), false
}
