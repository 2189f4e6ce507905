// Package metrics declares the Prometheus collectors for the answer pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Retrieval tiers, in degrade order.
const (
	TierSpecialtyPage     = "specialty_page"
	TierSpecialtyFallback = "specialty_fallback"
	TierSearch            = "search"
	TierSearchAnchor      = "search_anchor"
	TierDictionary        = "dictionary"
	TierDefault           = "default"
)

var (
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_classifications_total",
			Help: "Queries classified, by matched specialty key (none when unmatched)",
		},
		[]string{"specialty"},
	)

	RetrievalTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_retrieval_tier_total",
			Help: "Retrieval results by the tier that produced them",
		},
		[]string{"tier"},
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generations_total",
			Help: "Generation calls by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_generation_duration_seconds",
			Help:    "Duration of generation calls in seconds, retries included",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"backend"},
	)

	Answers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_answers_total",
			Help: "Orchestrated answers by outcome (generated or apology)",
		},
		[]string{"outcome"},
	)
)

// ObserveClassification records a classification outcome.
func ObserveClassification(specialtyKey string) {
	if specialtyKey == "" {
		specialtyKey = "none"
	}
	Classifications.WithLabelValues(specialtyKey).Inc()
}
