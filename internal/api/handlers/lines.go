package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
)

// LinesHandler serves published line combinations
type LinesHandler struct {
	provider contracts.DataProvider
	logger   *logger.Logger
}

// NewLinesHandler creates a new lines handler
func NewLinesHandler(provider contracts.DataProvider, log *logger.Logger) *LinesHandler {
	return &LinesHandler{
		provider: provider,
		logger:   log,
	}
}

// GetTeamLines returns the current published lines for a team
// GET /api/lines/{team}
func (h *LinesHandler) GetTeamLines(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	team := strings.ToUpper(mux.Vars(r)["team"])
	if team == "" {
		respondError(w, http.StatusBadRequest, "team is required")
		return
	}

	lines, err := h.provider.LineCombinations(ctx, team)
	if err != nil {
		if errors.Is(err, contracts.ErrNotSupported) {
			respondError(w, http.StatusNotImplemented, "lineup source not configured")
			return
		}
		h.logger.WithError(err).WithField("team", team).Error("Failed to fetch line combinations")
		respondError(w, http.StatusBadGateway, "failed to fetch line combinations")
		return
	}

	respondJSON(w, http.StatusOK, lines)
}
