// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/journal-recommender/internal/history"
	"github.com/pdiddy/journal-recommender/internal/intake"
	"github.com/pdiddy/journal-recommender/internal/pipeline"
	"github.com/pdiddy/journal-recommender/internal/session"
	"github.com/pdiddy/journal-recommender/pkg/types"
)

// maxBodyBytes bounds request bodies; abstracts are a few KB at most.
const maxBodyBytes = 1 << 20

// Recommender runs one submission. *pipeline.Service implements it.
type Recommender interface {
	Recommend(ctx context.Context, fields types.RawFields) (pipeline.Outcome, error)
}

// HistoryLister lists recent submissions. *history.Store implements it.
type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]history.Submission, error)
}

// Options configures the router.
type Options struct {
	// RequireSession gates /api routes behind session.Require.
	RequireSession bool
	Logger         *slog.Logger
}

// Handler holds the dependencies of the HTTP routes.
type Handler struct {
	recommender Recommender
	history     HistoryLister
	log         *slog.Logger
}

// NewRouter registers routes and the middleware stack. hist may be nil when
// history is disabled.
func NewRouter(rec Recommender, hist HistoryLister, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{recommender: rec, history: hist, log: log}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(log))
	r.Use(loggingMiddleware(log))
	r.Use(session.Inject)

	r.Get("/healthz", h.healthz)

	r.Route("/api", func(r chi.Router) {
		if opts.RequireSession {
			r.Use(session.Require)
		}
		r.Post("/recommend", h.recommend)
		r.Post("/podium", h.podium)
		r.Get("/history", h.listHistory)
	})
	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recommend relays the service reply as-is after validating the input.
func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	out, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         out.Raw.Success,
		"inputData":       out.Raw.InputData,
		"recommendations": out.Raw.Recommendations,
		"processingTime":  out.Raw.ProcessingTime,
	})
}

// podium returns the normalized top-3 view.
func (h *Handler) podium(w http.ResponseWriter, r *http.Request) {
	out, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": out.Raw.Success,
		"request": out.Request,
		"podium":  out.Podium,
	})
}

// run decodes the body and calls the pipeline, writing the error response
// itself when anything fails.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (pipeline.Outcome, bool) {
	var fields types.RawFields
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return pipeline.Outcome{}, false
	}

	out, err := h.recommender.Recommend(r.Context(), fields)
	if err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Missing required fields",
				"missing": verr.Missing,
			})
			return pipeline.Outcome{}, false
		}
		h.log.ErrorContext(r.Context(), "processing recommendation failed",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Failed to process recommendation", err.Error())
		return pipeline.Outcome{}, false
	}
	return out, true
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history is disabled", "")
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit", s)
			return
		}
		limit = n
	}

	subs, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reading history failed", err.Error())
		return
	}
	if subs == nil {
		subs = []history.Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message, details string) {
	body := map[string]string{"error": message}
	if details != "" {
		body["details"] = details
	}
	writeJSON(w, statusCode, body)
}
