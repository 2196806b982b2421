package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/runboard/internal/api/handlers"
	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/ingest"
	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/internal/observability"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/pkg/logger"
)

const rosterCSV = `Name,House,Gender,Distance_01-07,Distance_01-14,Distance_01-21
Alice,Red,F,10,20,0
Bob,Blue,M,5,5,5
Cara,Red,,0,0,0
`

type testEnv struct {
	router http.Handler
	store  *roster.Store
	loader *ingest.Loader
}

func newTestEnv(t *testing.T, load bool, opts RouterOptions) *testEnv {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025.csv"), []byte(rosterCSV), 0o644))

	log := logger.Nop()
	board := boardconfig.Default()
	metrics := observability.New()
	store := roster.NewStore(log)
	loader := ingest.NewLoader(ingest.NewCSVSource(dir, "%s.csv"), board, store, metrics, log, ingest.Selection{Year: "2025", Unit: "km"})
	if load {
		_, err := loader.ReloadCurrent(t.Context())
		require.NoError(t, err)
	}

	svc := leaderboard.NewService(store, board, metrics, log)
	router := NewRouter(Handlers{
		Leaderboard: handlers.NewLeaderboardHandler(svc, log),
		Stats:       handlers.NewStatsHandler(svc, log),
		Roster:      handlers.NewRosterHandler(store, loader, svc, log),
		Metrics:     metrics.Handler(),
	}, opts, log)

	return &testEnv{router: router, store: store, loader: loader}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func entryIDs(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	raw, ok := body["entries"].([]interface{})
	require.True(t, ok, "entries missing")
	ids := make([]string, len(raw))
	for i, e := range raw {
		ids[i] = e.(map[string]interface{})["identity"].(string)
	}
	return ids
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t, false, RouterOptions{})

	rec, body := env.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_NoGeneration(t *testing.T) {
	env := newTestEnv(t, false, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/leaderboard/individuals", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body["error"], "no roster generation")
}

func TestRouter_Individuals(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/leaderboard/individuals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "total_distance", body["metric"])
	assert.Equal(t, []string{"Alice", "Bob", "Cara"}, entryIDs(t, body))

	rec, body = env.do(t, "GET", "/api/leaderboard/individuals?metric=standard_deviation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asc", body["order"])
	entries := body["entries"].([]interface{})
	assert.Equal(t, "NaN", entries[2].(map[string]interface{})["metric_value"])
}

func TestRouter_InvalidMetric(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/leaderboard/individuals?metric=speed", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "speed")
}

func TestRouter_Categories(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/leaderboard/categories/House", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Red", "Blue"}, entryIDs(t, body))

	first := body["entries"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, -100.0, first["improvement"])

	rec, _ = env.do(t, "GET", "/api/leaderboard/categories/Colour", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CategoryBoardsAndMembers(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/leaderboard/boards/House", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["boards"], 2)

	rec, body = env.do(t, "GET", "/api/leaderboard/categories/Gender/N%2FA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Cara"}, entryIDs(t, body))

	rec, _ = env.do(t, "GET", "/api/leaderboard/categories/House/Green", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MemberValueNamedBoards(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	_, err := env.store.Install(&contracts.Roster{
		ID:         "boards-gen",
		Year:       "2025",
		Unit:       "km",
		Scale:      1,
		Attributes: []string{"House"},
		Records: []contracts.Record{
			{Identity: "Eve", Attributes: map[string]string{"House": "boards"}},
			{Identity: "Fay", Attributes: map[string]string{"House": "Red"}},
		},
	})
	require.NoError(t, err)

	rec, body := env.do(t, "GET", "/api/leaderboard/categories/House/boards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "boards", body["value"])
	assert.Equal(t, []string{"Eve"}, entryIDs(t, body))
}

func TestRouter_MetricsListsCategories(t *testing.T) {
	env := newTestEnv(t, false, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["metrics"])
	assert.Equal(t, []interface{}{}, body["categories"])

	_, err := env.loader.ReloadCurrent(t.Context())
	require.NoError(t, err)

	rec, body = env.do(t, "GET", "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"House", "Gender"}, body["categories"])
}

func TestRouter_Stats(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/stats/individuals/Alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", body["subject"])
	assert.Len(t, body["lines"], 7)

	rec, body = env.do(t, "GET", "/api/stats/categories/House/Red", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := body["lines"].([]interface{})
	assert.Equal(t, 30.0, lines[0].(map[string]interface{})["value"])

	rec, _ = env.do(t, "GET", "/api/stats/individuals/Zed", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ChartsAndImprovement(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/charts/categories/House/totals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["totals"], 2)

	rec, body = env.do(t, "GET", "/api/records/Alice/improvement", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["improvement"], 2)
}

func TestRouter_RosterAndValues(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "GET", "/api/roster", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"House", "Gender"}, body["attributes"])
	assert.Equal(t, []interface{}{"01-07", "01-14", "01-21"}, body["labels"])

	rec, body = env.do(t, "GET", "/api/roster/values/individual", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"Alice", "Bob", "Cara"}, body["values"])

	rec, body = env.do(t, "GET", "/api/roster/values/House", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"Blue", "Red"}, body["values"])
}

func TestRouter_RosterDescribesOneGeneration(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	_, err := env.store.Install(&contracts.Roster{
		ID:         "second",
		Year:       "2026",
		Unit:       "km",
		Scale:      1,
		Attributes: []string{"Grade"},
		Records: []contracts.Record{{
			Identity:     "Dan",
			Attributes:   map[string]string{"Grade": "9"},
			Observations: []contracts.Observation{{Label: "02-01", Value: 3}},
		}},
	})
	require.NoError(t, err)

	rec, body := env.do(t, "GET", "/api/roster", "")
	require.Equal(t, http.StatusOK, rec.Code)
	gen := body["generation"].(map[string]interface{})
	assert.Equal(t, "second", gen["id"])
	assert.Equal(t, 2.0, gen["sequence"])
	assert.Equal(t, []interface{}{"Grade"}, body["attributes"])
	assert.Equal(t, []interface{}{"02-01"}, body["labels"])
}

func TestRouter_Reload(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})

	rec, body := env.do(t, "POST", "/api/roster/reload", `{"unit":"mi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mi", body["unit"])
	assert.Equal(t, 2.0, body["sequence"])

	rec, _ = env.do(t, "POST", "/api/roster/reload?unit=furlong", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, "POST", "/api/roster/reload", `{"year":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = env.do(t, "POST", "/api/roster/reload", `{"year":"1999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "unknown dataset")

	info, ok := env.store.Info()
	require.True(t, ok)
	assert.Equal(t, "mi", info.Unit)
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{})
	env.do(t, "GET", "/api/leaderboard/individuals", "")

	rec, _ := env.do(t, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "runboard_queries_total")
	assert.Contains(t, rec.Body.String(), `runboard_generation_installs_total{source="csv"} 1`)
}

func TestRouter_RateLimit(t *testing.T) {
	env := newTestEnv(t, true, RouterOptions{RateLimit: 0.001, RateBurst: 2})

	for i := 0; i < 2; i++ {
		rec, _ := env.do(t, "GET", "/api/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec, _ := env.do(t, "GET", "/api/metrics", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// health is outside the limited subrouter
	rec, _ = env.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
