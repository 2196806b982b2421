package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/ingest"
	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/pkg/config"
	"github.com/wonny/runboard/pkg/logger"
)

// cliLogger returns a console logger for offline commands (warn level unless verbose)
func cliLogger(opts *globalOptions) *logger.Logger {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	return logger.NewWithWriter(os.Stderr, &config.Config{Env: "development", LogLevel: level, LogFormat: "console"})
}

// localSource bundles what offline commands need for one CSV file
type localSource struct {
	board *boardconfig.Config
	store *roster.Store
	svc   *leaderboard.Service
}

// openLocal loads file with unit into a fresh store
func openLocal(ctx context.Context, opts *globalOptions, file, unit string) (*localSource, error) {
	if file == "" {
		return nil, fmt.Errorf("--file is required")
	}

	log := cliLogger(opts)
	board, err := boardconfig.Load(opts.boardFile)
	if err != nil {
		return nil, err
	}

	store := roster.NewStore(log)
	loader := ingest.NewLoader(ingest.NewFileSource(file), board, store, nil, log, ingest.Selection{Year: "local", Unit: unit})
	if _, err := loader.ReloadCurrent(ctx); err != nil {
		return nil, err
	}

	return &localSource{
		board: board,
		store: store,
		svc:   leaderboard.NewService(store, board, nil, log),
	}, nil
}
