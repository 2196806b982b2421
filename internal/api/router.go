package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/runboard/internal/api/handlers"
	"github.com/wonny/runboard/pkg/logger"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Leaderboard *handlers.LeaderboardHandler
	Stats       *handlers.StatsHandler
	Roster      *handlers.RosterHandler
	Stream      http.Handler // /ws/generations, optional
	Metrics     http.Handler // /metrics, optional
}

// RouterOptions tunes middleware
type RouterOptions struct {
	RateLimit float64 // requests per second across /api, 0 disables
	RateBurst int
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, opts RouterOptions, log *logger.Logger) http.Handler {
	r := mux.NewRouter()
	// identities and category values may contain "/" (the N/A bucket)
	r.UseEncodedPath()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	if opts.RateLimit > 0 {
		api.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst), log))
	}

	// Metric catalogue and roster
	api.HandleFunc("/metrics", h.Leaderboard.ListMetrics).Methods("GET")
	api.HandleFunc("/roster", h.Roster.GetRoster).Methods("GET")
	api.HandleFunc("/roster/reload", h.Roster.Reload).Methods("POST")
	api.HandleFunc("/roster/values/{kind}", h.Roster.GetValues).Methods("GET")

	// Leaderboards
	api.HandleFunc("/leaderboard/individuals", h.Leaderboard.GetIndividuals).Methods("GET")
	api.HandleFunc("/leaderboard/boards/{category}", h.Leaderboard.GetCategoryBoards).Methods("GET")
	api.HandleFunc("/leaderboard/categories/{category}", h.Leaderboard.GetCategories).Methods("GET")
	api.HandleFunc("/leaderboard/categories/{category}/{value}", h.Leaderboard.GetCategoryMembers).Methods("GET")

	// Statistics and charts
	api.HandleFunc("/stats/individuals/{identity}", h.Stats.GetIndividual).Methods("GET")
	api.HandleFunc("/stats/categories/{category}/{value}", h.Stats.GetGroup).Methods("GET")
	api.HandleFunc("/charts/categories/{category}/totals", h.Stats.GetCategoryTotals).Methods("GET")
	api.HandleFunc("/records/{identity}/improvement", h.Stats.GetImprovement).Methods("GET")

	if h.Stream != nil {
		r.Handle("/ws/generations", h.Stream).Methods("GET")
	}
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods("GET")
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "runboard-api",
	})
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// websocket upgrade needs the original writer (http.Hijacker)
			if r.URL.Path == "/ws/generations" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware rejects requests beyond the shared token bucket
func rateLimitMiddleware(limiter *rate.Limiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WithField("path", r.URL.Path).Debug("Rate limit exceeded")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
