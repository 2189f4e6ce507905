// Package prompt assembles the single text prompt sent to the generation
// backend.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sells-group/billing-assistant/internal/model"
)

// Delimiter separates the answer from the follow-up question in replies.
const Delimiter = "###"

// DelimiterInstruction is the reply-format mandate. It appears exactly once
// in every prompt.
const DelimiterInstruction = `IMPORTANT: After your main answer, insert the delimiter "` + Delimiter + `" and then ask a brief, relevant follow-up question.`

const closingReminder = `IMPORTANT: Remember to use "` + Delimiter + `" before your follow-up question.`

// DefaultHistoryLimit is the number of most recent turns rendered, and the
// most any Builder renders.
const DefaultHistoryLimit = 10

// Input is everything a prompt is built from.
type Input struct {
	Message   string
	Category  string
	History   []model.ConversationTurn
	Specialty *model.Specialty
	Retrieval *model.RetrievalResult
}

// Builder renders prompts. The zero value is usable.
type Builder struct {
	// SiteDomain labels injected excerpts. Default: billingparadise.com.
	SiteDomain string
	// SiteName names the site in the specialty note. Default: BillingParadise.
	SiteName string
	// HistoryLimit caps rendered turns. Zero or values above
	// DefaultHistoryLimit use DefaultHistoryLimit.
	HistoryLimit int
}

// Build assembles the prompt blocks in fixed order, omitting blocks whose
// source data is absent.
func (b Builder) Build(in Input) string {
	blocks := []string{b.system(in.Category)}

	if in.Specialty != nil {
		blocks = append(blocks, fmt.Sprintf(
			"IMPORTANT: This query is about %s. The user is asking about specialty billing services. Use the %s specialty page: %s",
			in.Specialty.Name, b.siteName(), in.Specialty.URL,
		))
	}

	if t := b.transcript(in.History); t != "" {
		blocks = append(blocks, t)
	}

	if in.Retrieval.HasContent() {
		domain := b.siteDomain()
		blocks = append(blocks, fmt.Sprintf(
			"Relevant information from %s:\n%s\n\nUse this information to answer accurately. Mention it's from %s if relevant.",
			domain, in.Retrieval.Content, domain,
		))
	}

	blocks = append(blocks, "User: "+in.Message, closingReminder)
	return strings.Join(blocks, "\n\n")
}

func (b Builder) system(category string) string {
	p := PersonaFor(category)
	return "You are a healthcare, medical coding, and RCM expert. Answer queries accurately.\n" +
		"Respond as a " + p.Tone + " with expertise in " + p.Expertise + ".\n\n" +
		DelimiterInstruction + "\n\n" +
		"Rules:\n" +
		"1. Answer the user's question clearly.\n" +
		"2. If related to specialty billing, mention the specific medical specialty.\n" +
		"3. Use \"" + Delimiter + "\" to separate the answer from the follow-up question.\n\n" +
		"Example:\n" +
		"User: \"What is RCM?\"\n" +
		"Assistant: \"Revenue Cycle Management (RCM) is... [explanation].\n" +
		Delimiter + "\n" +
		"Would you like to know about the specific steps in the RCM process?\""
}

func (b Builder) transcript(history []model.ConversationTurn) string {
	limit := b.HistoryLimit
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	recent := model.RecentTurns(history, limit)
	if len(recent) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Previous conversation:")
	for _, t := range recent {
		sb.WriteString("\n")
		sb.WriteString(t.Role.Label())
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}

func (b Builder) siteDomain() string {
	if b.SiteDomain == "" {
		return "billingparadise.com"
	}
	return b.SiteDomain
}

func (b Builder) siteName() string {
	if b.SiteName == "" {
		return "BillingParadise"
	}
	return b.SiteName
}
