// Package server exposes the assistant over a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/billing-assistant/internal/assistant"
	"github.com/sells-group/billing-assistant/internal/model"
	"github.com/sells-group/billing-assistant/internal/store"
)

// Service is the assistant surface the API serves.
type Service interface {
	Search(ctx context.Context, query string) (model.RetrievalResult, *model.Specialty)
	Answer(ctx context.Context, req assistant.Request) model.GeneratedAnswer
}

// Options configure the HTTP layer.
type Options struct {
	// CORSOrigins lists allowed origins. Empty allows any origin.
	CORSOrigins []string
	// RateLimit is the number of requests per RateWindow allowed per client
	// IP. Zero disables limiting.
	RateLimit  int
	RateWindow time.Duration
	// GenerationState reports the generation circuit state for the health
	// endpoint. Nil omits it.
	GenerationState func() string
}

// Server routes API requests to the assistant and the user store.
type Server struct {
	svc      Service
	store    store.Store
	genState func() string
	router   chi.Router
}

// New builds the router. st may be nil, in which case user endpoints answer
// 503 and search history is not recorded.
func New(svc Service, st store.Store, opts Options) *Server {
	s := &Server{svc: svc, store: st, genState: opts.GenerationState}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(newIPLimiter(opts.RateLimit, opts.RateWindow).middleware)
		}
		r.Get("/health", s.handleHealth)
		r.Get("/categories", s.handleCategories)
		r.Post("/search", s.handleSearch)
		r.Post("/generate", s.handleGenerate)
		r.Post("/users/email", s.handleSaveEmail)
		r.Get("/users/email/{email}", s.handleGetUser)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }
