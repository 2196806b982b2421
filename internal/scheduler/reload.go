package scheduler

import (
	"context"

	"github.com/wonny/runboard/internal/roster"
)

// Reloader re-reads the active roster selection
type Reloader interface {
	ReloadCurrent(ctx context.Context) (roster.GenerationInfo, error)
}

// ReloadJob periodically reloads the roster so edits in the source appear
// without a restart
type ReloadJob struct {
	reloader Reloader
	schedule string
}

// NewReloadJob creates a reload job on schedule
func NewReloadJob(reloader Reloader, schedule string) *ReloadJob {
	return &ReloadJob{reloader: reloader, schedule: schedule}
}

// Name implements Job
func (j *ReloadJob) Name() string { return "roster_reload" }

// Schedule implements Job
func (j *ReloadJob) Schedule() string { return j.schedule }

// Run implements Job
func (j *ReloadJob) Run(ctx context.Context) error {
	_, err := j.reloader.ReloadCurrent(ctx)
	return err
}
