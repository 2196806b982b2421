package handlers

import (
	"net/http"

	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/internal/ranking"
	"github.com/wonny/runboard/pkg/logger"
)

// defaultMetric is used when the metric query parameter is omitted
const defaultMetric = string(ranking.MetricTotalDistance)

// LeaderboardHandler handles ranking endpoints
// ⭐ SSOT: 리더보드 API 핸들러는 이 구조체에서만
type LeaderboardHandler struct {
	svc    *leaderboard.Service
	logger *logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(svc *leaderboard.Service, log *logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc, logger: log}
}

func metricParams(r *http.Request) (metric, order string) {
	q := r.URL.Query()
	metric = q.Get("metric")
	if metric == "" {
		metric = defaultMetric
	}
	return metric, q.Get("order")
}

// ListMetrics returns the rankable metrics and the selectable categories
// GET /api/metrics
func (h *LeaderboardHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.CategoryKinds()
	if err != nil {
		// 세대가 없으면 범주 목록은 비움
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metrics":    h.svc.Metrics(),
		"categories": categories,
	})
}

// GetIndividuals ranks every record
// GET /api/leaderboard/individuals?metric=total_distance&order=desc
func (h *LeaderboardHandler) GetIndividuals(w http.ResponseWriter, r *http.Request) {
	metric, order := metricParams(r)

	lb, err := h.svc.Individuals(metric, order)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lb)
}

// GetCategories ranks the values of a category
// GET /api/leaderboard/categories/{category}?metric=&order=
func (h *LeaderboardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	metric, order := metricParams(r)

	lb, err := h.svc.Categories(pathVar(r, "category"), metric, order)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lb)
}

// GetCategoryBoards ranks records inside every value of a category
// GET /api/leaderboard/boards/{category}?metric=&order=
func (h *LeaderboardHandler) GetCategoryBoards(w http.ResponseWriter, r *http.Request) {
	metric, order := metricParams(r)

	boards, err := h.svc.WithinCategory(pathVar(r, "category"), metric, order)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boards)
}

// GetCategoryMembers ranks the records of one category value
// GET /api/leaderboard/categories/{category}/{value}?metric=&order=
func (h *LeaderboardHandler) GetCategoryMembers(w http.ResponseWriter, r *http.Request) {
	metric, order := metricParams(r)

	lb, err := h.svc.Members(pathVar(r, "category"), pathVar(r, "value"), metric, order)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lb)
}
