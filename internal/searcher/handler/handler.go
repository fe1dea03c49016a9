// Package handler exposes the search engine and title autocomplete over
// HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/study-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/metrics"
)

type Searcher interface {
	Search(keyword string) []string
	Stats() index.Stats
	Terms() []string
}

type Suggester interface {
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

type SearchResponse struct {
	Query     string   `json:"query"`
	TotalHits int      `json:"total_hits"`
	Results   []string `json:"results"`
	LatencyUs int64    `json:"latency_us"`
}

type AutocompleteResponse struct {
	Prefix      string   `json:"prefix"`
	Suggestions []string `json:"suggestions"`
}

type TermsResponse struct {
	Total int      `json:"total"`
	Terms []string `json:"terms"`
}

type Handler struct {
	searcher  Searcher
	suggester Suggester
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New builds a Handler. suggester and m may be nil, which disables
// autocomplete and autocomplete metrics respectively.
func New(searcher Searcher, suggester Suggester, m *metrics.Metrics) *Handler {
	return &Handler{
		searcher:  searcher,
		suggester: suggester,
		metrics:   m,
		logger:    slog.Default().With("component", "search-handler"),
	}
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/autocomplete", h.Autocomplete)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/terms", h.Terms)
}

// Search looks up the q parameter exactly as given; the engine only folds
// case.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logger.FromContext(r.Context())

	values := r.URL.Query()
	if !values.Has("q") {
		h.writeError(w, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "query parameter 'q' is required"))
		return
	}
	query := values.Get("q")

	results := h.searcher.Search(query)
	latency := time.Since(start)
	log.Info("search completed",
		"query", query,
		"total_hits", len(results),
		"latency_us", latency.Microseconds(),
	)
	h.writeJSON(w, http.StatusOK, SearchResponse{
		Query:     query,
		TotalHits: len(results),
		Results:   results,
		LatencyUs: latency.Microseconds(),
	})
}

func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		h.writeError(w, apperrors.New(apperrors.ErrUnavailable, http.StatusServiceUnavailable, "autocomplete is disabled"))
		return
	}
	prefix := r.URL.Query().Get("prefix")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	suggestions, err := h.suggester.Suggest(r.Context(), prefix, limit)
	if err != nil {
		h.countAutocomplete("error")
		logger.FromContext(r.Context()).Error("autocomplete failed", "prefix", prefix, "error", err)
		h.writeError(w, err)
		return
	}
	h.countAutocomplete("ok")
	h.writeJSON(w, http.StatusOK, AutocompleteResponse{
		Prefix:      prefix,
		Suggestions: suggestions,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.searcher.Stats())
}

// Terms lists the indexed vocabulary in lexical order.
func (h *Handler) Terms(w http.ResponseWriter, r *http.Request) {
	terms := h.searcher.Terms()
	h.writeJSON(w, http.StatusOK, TermsResponse{Total: len(terms), Terms: terms})
}

func (h *Handler) countAutocomplete(status string) {
	if h.metrics != nil {
		h.metrics.AutocompleteTotal.WithLabelValues(status).Inc()
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// writeError maps err to a status code. Only AppError messages reach the
// client; other errors are reported by their status text.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatusCode(err)
	message := http.StatusText(status)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}
