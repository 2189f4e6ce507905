package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/billing-assistant/internal/assistant"
	"github.com/sells-group/billing-assistant/internal/model"
	"github.com/sells-group/billing-assistant/internal/prompt"
	"github.com/sells-group/billing-assistant/internal/store"
)

const (
	maxQueryChars   = 500
	maxMessageChars = 1000
	maxBodyBytes    = 1 << 20
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]string{
		"status":  "ok",
		"message": "Healthcare billing assistant is running",
	}
	if s.genState != nil {
		body["generation"] = s.genState()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeData(w, prompt.Personas())
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"userId"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Query is required and must be a string")
		return
	}
	if utf8.RuneCountInString(req.Query) > maxQueryChars {
		writeError(w, http.StatusBadRequest, "Query is too long (max 500 chars)")
		return
	}

	res, _ := s.svc.Search(r.Context(), req.Query)

	if req.UserID != "" && s.store != nil {
		count := len(res.AdditionalURLs)
		if res.PrimaryURL != "" {
			count++
		}
		if _, err := s.store.SaveSearchHistory(r.Context(), req.UserID, req.Query, count); err != nil {
			zap.L().Warn("server: save search history failed", zap.String("user_id", req.UserID), zap.Error(err))
		}
	}

	writeData(w, res)
}

type generateRequest struct {
	Message       string                   `json:"message"`
	Category      string                   `json:"category"`
	History       []model.ConversationTurn `json:"history"`
	SearchContext *model.RetrievalResult   `json:"searchContext"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required and must be a string")
		return
	}
	if utf8.RuneCountInString(req.Message) > maxMessageChars {
		writeError(w, http.StatusBadRequest, "Message is too long (max 1000 chars)")
		return
	}
	if req.Category == "" {
		req.Category = prompt.DefaultCategory
	}

	answer := s.svc.Answer(r.Context(), assistant.Request{
		Message:     req.Message,
		Category:    req.Category,
		History:     req.History,
		PriorSearch: req.SearchContext,
	})
	writeData(w, answer)
}

func (s *Server) handleSaveEmail(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "User store is not configured")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := decode(w, r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if !emailRe.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	user, err := s.store.SaveUserEmail(r.Context(), req.Email)
	if err != nil {
		zap.L().Error("server: save email failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save email")
		return
	}
	writeData(w, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "User store is not configured")
		return
	}

	email := chi.URLParam(r, "email")
	if !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		zap.L().Error("server: get user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	writeData(w, user)
}
