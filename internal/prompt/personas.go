package prompt

import "strings"

// DefaultCategory is used when a request names no known category.
const DefaultCategory = "General Healthcare Knowledge"

// Persona is the voice the assistant adopts for a chat category.
type Persona struct {
	Category  string `json:"category"`
	Tone      string `json:"tone"`
	Expertise string `json:"expertise"`
}

var personas = []Persona{
	{
		Category:  "Medical Coding",
		Tone:      "professional coding specialist",
		Expertise: "ICD-10-CM, CPT, HCPCS coding guidelines, modifier usage, and coding compliance",
	},
	{
		Category:  "Healthcare RCM",
		Tone:      "revenue cycle management expert",
		Expertise: "claims processing, payment posting, denial management, and revenue optimization",
	},
	{
		Category:  "Claims & Denials",
		Tone:      "denial management specialist",
		Expertise: "claim submission, denial prevention, appeal processes, and payer requirements",
	},
	{
		Category:  "Career Guidance",
		Tone:      "healthcare career advisor",
		Expertise: "certifications, career paths, professional development, and industry trends",
	},
	{
		Category:  DefaultCategory,
		Tone:      "healthcare operations consultant",
		Expertise: "healthcare administration, compliance, best practices, and industry standards",
	},
}

// PersonaFor returns the persona for category, matched case-insensitively.
// Unknown and empty categories get the default persona.
func PersonaFor(category string) Persona {
	category = strings.TrimSpace(category)
	for _, p := range personas {
		if strings.EqualFold(p.Category, category) {
			return p
		}
	}
	return personas[len(personas)-1]
}

// Personas returns the known personas in display order.
func Personas() []Persona {
	return append([]Persona(nil), personas...)
}
