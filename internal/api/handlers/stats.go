package handlers

import (
	"net/http"

	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/pkg/logger"
)

// StatsHandler handles statistics and chart endpoints
type StatsHandler struct {
	svc    *leaderboard.Service
	logger *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc *leaderboard.Service, log *logger.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: log}
}

// GetIndividual returns the statistics block of one record
// GET /api/stats/individuals/{identity}
func (h *StatsHandler) GetIndividual(w http.ResponseWriter, r *http.Request) {
	block, err := h.svc.IndividualStats(pathVar(r, "identity"))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, block)
}

// GetGroup returns the statistics block of one category value
// GET /api/stats/categories/{category}/{value}
func (h *StatsHandler) GetGroup(w http.ResponseWriter, r *http.Request) {

	block, err := h.svc.GroupStats(pathVar(r, "category"), pathVar(r, "value"))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, block)
}

// GetCategoryTotals returns the total distance per category value
// GET /api/charts/categories/{category}/totals
func (h *StatsHandler) GetCategoryTotals(w http.ResponseWriter, r *http.Request) {
	category := pathVar(r, "category")

	totals, err := h.svc.CategoryTotals(category)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"totals":   totals,
	})
}

// GetImprovement returns the week-over-week improvement series of a record
// GET /api/records/{identity}/improvement
func (h *StatsHandler) GetImprovement(w http.ResponseWriter, r *http.Request) {
	identity := pathVar(r, "identity")

	series, err := h.svc.Improvement(identity)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"identity":    identity,
		"improvement": series,
	})
}
