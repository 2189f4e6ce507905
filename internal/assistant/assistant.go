// Package assistant composes classification, retrieval, prompt assembly, and
// generation into a single answer operation.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/billing-assistant/internal/metrics"
	"github.com/sells-group/billing-assistant/internal/model"
	"github.com/sells-group/billing-assistant/internal/prompt"
)

// Classifier maps a query to at most one specialty.
type Classifier interface {
	Classify(query string) (*model.Specialty, bool)
}

// Retriever gathers enrichment for a query. It never fails.
type Retriever interface {
	Retrieve(ctx context.Context, query string, specialty *model.Specialty) model.RetrievalResult
}

// Generator turns a prompt into answer text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// State is a step of the answer state machine.
type State string

const (
	StateStart       State = "start"
	StateClassified  State = "classified"
	StateRetrieved   State = "retrieved"
	StatePromptBuilt State = "prompt_built"
	StateGenerated   State = "generated"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Request is one answer request.
type Request struct {
	Message  string
	Category string
	History  []model.ConversationTurn
	// PriorSearch, when set, is used instead of a fresh retrieval.
	PriorSearch *model.RetrievalResult
}

// Options tune an Assistant.
type Options struct {
	// Prompt renders prompts.
	Prompt prompt.Builder
	// IncludeErrorDetail appends the generation error to apology answers.
	IncludeErrorDetail bool
}

// Assistant is the answer orchestrator. It holds no per-request state and is
// safe for concurrent use.
type Assistant struct {
	classifier Classifier
	retriever  Retriever
	generator  Generator
	opts       Options
}

// New creates an Assistant from its collaborators.
func New(c Classifier, r Retriever, g Generator, opts Options) *Assistant {
	return &Assistant{classifier: c, retriever: r, generator: g, opts: opts}
}

// Search classifies query and retrieves enrichment for it.
func (a *Assistant) Search(ctx context.Context, query string) (model.RetrievalResult, *model.Specialty) {
	sp := a.classify(query)
	return a.retriever.Retrieve(ctx, query, sp), sp
}

// Answer runs classify, retrieve, build, and generate for req. Generation
// failures become an apology answer that keeps the retrieved sources; no
// error is returned.
func (a *Assistant) Answer(ctx context.Context, req Request) model.GeneratedAnswer {
	log := zap.L().With(zap.String("category", req.Category))
	trace := func(s State) { log.Debug("assistant: state", zap.String("state", string(s))) }
	trace(StateStart)

	sp := a.classify(req.Message)
	trace(StateClassified)

	var retrieval model.RetrievalResult
	if req.PriorSearch != nil {
		retrieval = req.PriorSearch.Capped()
		log.Debug("assistant: reusing prior search context")
	} else {
		retrieval = a.retriever.Retrieve(ctx, req.Message, sp)
	}
	trace(StateRetrieved)

	p := a.opts.Prompt.Build(prompt.Input{
		Message:   req.Message,
		Category:  req.Category,
		History:   req.History,
		Specialty: sp,
		Retrieval: &retrieval,
	})
	trace(StatePromptBuilt)

	answer := model.GeneratedAnswer{
		SourceURL:      retrieval.PrimaryURL,
		AdditionalURLs: sourceList(retrieval.AdditionalURLs),
	}

	text, err := a.generator.Generate(ctx, p)
	trace(StateGenerated)
	if err != nil {
		log.Error("assistant: generation failed", zap.Error(err))
		trace(StateFailed)
		metrics.Answers.WithLabelValues("apology").Inc()
		answer.Text = Apology(req.Category, a.detail(err))
		return answer
	}

	metrics.Answers.WithLabelValues("generated").Inc()
	answer.Text = text
	trace(StateDone)
	return answer
}

func (a *Assistant) classify(query string) *model.Specialty {
	sp, ok := a.classifier.Classify(query)
	if !ok {
		metrics.ObserveClassification("")
		return nil
	}
	metrics.ObserveClassification(sp.Key)
	return sp
}

func (a *Assistant) detail(err error) string {
	if !a.opts.IncludeErrorDetail {
		return ""
	}
	return err.Error()
}

// Apology is the answer text returned when generation fails. detail, when
// non-empty, is appended as a diagnostic suffix.
func Apology(category, detail string) string {
	p := prompt.PersonaFor(category)
	msg := fmt.Sprintf(
		"I apologize, but I'm having trouble connecting to the AI service. As a %s, I'm here to help with %s. Please try again in a moment.",
		p.Tone, p.Expertise,
	)
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += " Error: " + detail
	}
	return msg
}

func sourceList(urls []string) []string {
	out := make([]string, 0, len(urls))
	out = append(out, urls...)
	if len(out) > model.MaxAdditionalURLs {
		out = out[:model.MaxAdditionalURLs]
	}
	return out
}
