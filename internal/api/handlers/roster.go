package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/wonny/runboard/internal/ingest"
	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/pkg/logger"
)

// reloadTimeout bounds a reload triggered over HTTP
const reloadTimeout = 30 * time.Second

// Reloader installs a new generation for a selection
type Reloader interface {
	Reload(ctx context.Context, sel ingest.Selection) (roster.GenerationInfo, error)
	Selection() ingest.Selection
}

// RosterHandler handles generation metadata and reload endpoints
type RosterHandler struct {
	store    *roster.Store
	reloader Reloader
	svc      *leaderboard.Service
	logger   *logger.Logger
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(store *roster.Store, reloader Reloader, svc *leaderboard.Service, log *logger.Logger) *RosterHandler {
	return &RosterHandler{store: store, reloader: reloader, svc: svc, logger: log}
}

// RosterResponse describes the installed generation
type RosterResponse struct {
	Generation roster.GenerationInfo `json:"generation"`
	Selection  ingest.Selection      `json:"selection"`
	Attributes []string              `json:"attributes"`
	Labels     []string              `json:"labels"`
	Scale      float64               `json:"scale"`
}

// GetRoster returns metadata of the installed generation
// GET /api/roster
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	current, info, err := h.store.Snapshot()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	labels := current.Labels()
	if labels == nil {
		labels = []string{}
	}
	respondJSON(w, http.StatusOK, RosterResponse{
		Generation: info,
		Selection:  h.reloader.Selection(),
		Attributes: current.Attributes,
		Labels:     labels,
		Scale:      current.Scale,
	})
}

// Reload installs the generation for the requested year/unit
// POST /api/roster/reload  {"year":"2025","unit":"mi"}  (fields optional, query params accepted)
func (h *RosterHandler) Reload(w http.ResponseWriter, r *http.Request) {
	var sel ingest.Selection
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&sel); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		sel.Year = v
	}
	if v := q.Get("unit"); v != "" {
		sel.Unit = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), reloadTimeout)
	defer cancel()

	info, err := h.reloader.Reload(ctx, sel)
	if err != nil {
		h.logger.WithError(err).Warn("Roster reload rejected")
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// GetValues lists identities ("individual") or distinct category values
// GET /api/roster/values/{kind}
func (h *RosterHandler) GetValues(w http.ResponseWriter, r *http.Request) {
	kind := pathVar(r, "kind")

	values, err := h.svc.Values(kind)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":   kind,
		"values": values,
	})
}
