package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/runboard/internal/api"
	"github.com/wonny/runboard/internal/api/handlers"
	"github.com/wonny/runboard/internal/api/stream"
	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/ingest"
	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/internal/observability"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/internal/scheduler"
	"github.com/wonny/runboard/pkg/config"
	"github.com/wonny/runboard/pkg/database"
	"github.com/wonny/runboard/pkg/logger"
)

func newAPICmd(g *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Start the HTTP API server",
		Long: `Starts the REST API over the configured roster source.

Configuration comes from the environment (.env supported): DATA_SOURCE,
DATA_DIR, DATABASE_URL, DEFAULT_YEAR, DEFAULT_UNIT, RELOAD_SCHEDULE,
WATCH_ENABLED, METRICS_ENABLED, API_RATE_LIMIT, ...

Endpoints:
  GET  /health
  GET  /api/metrics
  GET  /api/roster
  POST /api/roster/reload
  GET  /api/roster/values/{kind}
  GET  /api/leaderboard/individuals?metric=&order=
  GET  /api/leaderboard/categories/{category}
  GET  /api/leaderboard/boards/{category}
  GET  /api/leaderboard/categories/{category}/{value}
  GET  /api/stats/individuals/{identity}
  GET  /api/stats/categories/{category}/{value}
  GET  /api/charts/categories/{category}/totals
  GET  /api/records/{identity}/improvement
  GET  /ws/generations
  GET  /metrics

Example:
  runboard api
  runboard api --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPIServer(cmd, g, port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func runAPIServer(cmd *cobra.Command, g *globalOptions, port string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}
	if g.boardFile != "" {
		cfg.Data.BoardConfig = g.boardFile
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	board, err := boardconfig.Load(cfg.Data.BoardConfig)
	if err != nil {
		return fmt.Errorf("load board config: %w", err)
	}
	boardHash, err := boardconfig.Hash(board)
	if err != nil {
		return fmt.Errorf("hash board config: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"port":   cfg.Port,
		"env":    cfg.Env,
		"source": cfg.Data.Source,
		"board":  boardHash[:12],
	}).Info("Initializing API server")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Roster source
	var source ingest.Source
	var csvSource *ingest.CSVSource
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		log.Info("Connected to database")

		pg, err := ingest.NewPostgresSource(db.Pool, cfg.Database.Table)
		if err != nil {
			return err
		}
		source = pg
	default:
		csvSource = ingest.NewCSVSource(cfg.Data.Dir, cfg.Data.FilePattern)
		source = csvSource
	}

	// 4. Store, loader, query service
	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.New()
	}
	store := roster.NewStore(log)
	loader := ingest.NewLoader(source, board, store, metrics, log, ingest.Selection{
		Year: cfg.Data.DefaultYear,
		Unit: cfg.Data.DefaultUnit,
	})
	if _, err := loader.ReloadCurrent(ctx); err != nil {
		// 서버는 기동, 첫 적재 성공 전까지 조회는 503
		log.WithError(err).Warn("Initial roster load failed")
	}
	svc := leaderboard.NewService(store, board, metrics, log)

	// 5. Background reloaders
	if cfg.Data.WatchEnabled && csvSource != nil {
		go func() {
			if err := loader.WatchCSV(ctx, csvSource); err != nil {
				log.WithError(err).Error("Roster watcher stopped")
			}
		}()
	}
	if cfg.Data.ReloadSchedule != "" {
		sched := scheduler.New(log)
		if err := sched.AddJob(scheduler.NewReloadJob(loader, cfg.Data.ReloadSchedule)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	hub := stream.NewHub(store, log)
	go hub.Run(ctx)

	// 6. Router and server
	h := api.Handlers{
		Leaderboard: handlers.NewLeaderboardHandler(svc, log),
		Stats:       handlers.NewStatsHandler(svc, log),
		Roster:      handlers.NewRosterHandler(store, loader, svc, log),
		Stream:      hub,
	}
	if metrics != nil {
		h.Metrics = metrics.Handler()
	}
	router := api.NewRouter(h, api.RouterOptions{
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Server running on http://localhost:%s (Ctrl+C to stop)\n", cfg.Port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
