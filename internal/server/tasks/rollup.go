// Package tasks schedules background jobs.
package tasks

import (
	"context"

	"github.com/aquapure/backoffice/internal/logging"
	"github.com/aquapure/backoffice/internal/server/services"
	"github.com/robfig/cron/v3"
)

// Rollup periodically folds raw visitor events into the daily stats table.
type Rollup struct {
	cron     *cron.Cron
	visitors *services.VisitorService
	logger   logging.Logger
}

// NewRollup schedules the aggregation job. The schedule uses standard cron
// syntax or a descriptor like "@midnight".
func NewRollup(schedule string, visitors *services.VisitorService, logger logging.Logger) (*Rollup, error) {
	r := &Rollup{
		cron:     cron.New(),
		visitors: visitors,
		logger:   logger,
	}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rollup) run() {
	ctx := context.Background()
	if err := r.visitors.RollupDaily(ctx); err != nil {
		r.logger.Error(ctx, "visitor rollup failed", "error", err)
		return
	}
	r.logger.Info(ctx, "visitor rollup completed")
}

func (r *Rollup) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (r *Rollup) Stop() {
	<-r.cron.Stop().Done()
}
