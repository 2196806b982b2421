package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/observability"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/pkg/logger"
)

// Loader fetches, builds and installs roster generations
// ⭐ SSOT: Store.Install()은 Loader를 통해서만 호출
type Loader struct {
	source  Source
	builder *Builder
	board   *boardconfig.Config
	store   *roster.Store
	metrics *observability.Metrics
	logger  *logger.Logger

	mu        sync.Mutex // 리로드 직렬화
	selection Selection
}

// NewLoader creates a loader. initial is the selection used until a reload names another.
func NewLoader(source Source, board *boardconfig.Config, store *roster.Store, metrics *observability.Metrics, log *logger.Logger, initial Selection) *Loader {
	return &Loader{
		source:    source,
		builder:   NewBuilder(board.Schema),
		board:     board,
		store:     store,
		metrics:   metrics,
		logger:    log,
		selection: initial,
	}
}

// Selection returns the selection of the last successful reload
func (l *Loader) Selection() Selection {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selection
}

// Reload installs the generation for sel. Empty fields keep the current selection.
// A generation whose fingerprint matches the installed one is not reinstalled.
func (l *Loader) Reload(ctx context.Context, sel Selection) (roster.GenerationInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	sel = sel.merge(l.selection)

	unit, err := l.board.Unit(sel.Unit)
	if err != nil {
		return roster.GenerationInfo{}, err
	}

	table, err := l.source.Fetch(ctx, sel.Year)
	if err != nil {
		l.logger.WithError(err).WithFields(map[string]interface{}{
			"source": l.source.Name(),
			"year":   sel.Year,
		}).Error("Failed to fetch roster")
		return roster.GenerationInfo{}, fmt.Errorf("fetch %s roster %s: %w", l.source.Name(), sel.Year, err)
	}

	r, err := l.builder.Build(table, sel.Year, unit)
	if err != nil {
		l.logger.WithError(err).WithField("year", sel.Year).Error("Failed to build roster")
		return roster.GenerationInfo{}, err
	}

	if info, ok := l.store.Info(); ok && info.ID == r.ID {
		l.selection = sel
		l.logger.WithField("id", r.ID).Debug("Roster unchanged, keeping generation")
		return info, nil
	}

	info, err := l.store.Install(r)
	if err != nil {
		return roster.GenerationInfo{}, err
	}
	l.selection = sel
	l.metrics.GenerationInstalled(l.source.Name(), info.Records)

	l.logger.WithFields(map[string]interface{}{
		"source":   l.source.Name(),
		"duration": time.Since(start).String(),
	}).Debug("Roster reload complete")

	return info, nil
}

// ReloadCurrent re-reads the active selection
func (l *Loader) ReloadCurrent(ctx context.Context) (roster.GenerationInfo, error) {
	return l.Reload(ctx, Selection{})
}
