package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hmelo/puckline/internal/pipeline"
	"github.com/hmelo/puckline/internal/store"
	"github.com/hmelo/puckline/pkg/logger"
)

const dateLayout = "2006-01-02"

// PredictionsHandler handles prediction API endpoints
type PredictionsHandler struct {
	repo      *store.Repository
	generator *pipeline.Generator
	logger    *logger.Logger
}

// NewPredictionsHandler creates a new predictions handler
func NewPredictionsHandler(repo *store.Repository, gen *pipeline.Generator, log *logger.Logger) *PredictionsHandler {
	return &PredictionsHandler{
		repo:      repo,
		generator: gen,
		logger:    log,
	}
}

// GetByDate returns all predictions for an analysis date, ranked
// GET /api/predictions/{date}
func (h *PredictionsHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	predictions, err := h.repo.PredictionsByDate(ctx, date)
	if err != nil {
		h.logger.WithError(err).WithField("date", date.Format(dateLayout)).Error("Failed to load predictions")
		respondError(w, http.StatusInternalServerError, "failed to load predictions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":        date.Format(dateLayout),
		"count":       len(predictions),
		"predictions": predictions,
	})
}

// GetTopByDate returns the top N predictions for a date
// GET /api/predictions/{date}/top?limit=10
func (h *PredictionsHandler) GetTopByDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	picks, err := h.repo.TopByDate(ctx, date, limit)
	if err != nil {
		h.logger.WithError(err).WithField("date", date.Format(dateLayout)).Error("Failed to load top picks")
		respondError(w, http.StatusInternalServerError, "failed to load top picks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date.Format(dateLayout),
		"limit": limit,
		"picks": picks,
	})
}

// GetSummary returns confidence-tier counts for a date
// GET /api/predictions/{date}/summary
func (h *PredictionsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	counts, err := h.repo.ConfidenceCounts(ctx, date)
	if err != nil {
		h.logger.WithError(err).WithField("date", date.Format(dateLayout)).Error("Failed to load summary")
		respondError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":          date.Format(dateLayout),
		"total":         total,
		"by_confidence": counts,
	})
}

// generateRequest is the body for POST /api/predictions/generate.
// Either date, or from and to for a historical range.
type generateRequest struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Generate runs prediction generation on demand
// POST /api/predictions/generate
func (h *PredictionsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.Date != "":
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		result, err := h.generator.GenerateForDate(ctx, date)
		if err != nil {
			h.logger.WithError(err).WithField("date", req.Date).Error("Generation failed")
			respondError(w, http.StatusInternalServerError, "generation failed")
			return
		}
		respondJSON(w, http.StatusOK, result)

	case req.From != "" && req.To != "":
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			respondError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			respondError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}

		result, err := h.generator.GenerateRange(ctx, from, to)
		if err != nil {
			h.logger.WithError(err).WithFields(map[string]interface{}{
				"from": req.From,
				"to":   req.To,
			}).Error("Range generation failed")
			respondError(w, http.StatusInternalServerError, "range generation failed")
			return
		}
		respondJSON(w, http.StatusOK, result)

	default:
		respondError(w, http.StatusBadRequest, "provide date, or from and to")
	}
}

// parseDateVar extracts and validates the {date} path variable.
// Writes the error response itself when invalid.
func parseDateVar(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := mux.Vars(r)["date"]
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
