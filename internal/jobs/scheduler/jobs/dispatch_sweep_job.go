package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-automation/internal/observability"
)

// DispatchSweepJob sends scheduled executions whose time has come
type DispatchSweepJob struct {
	dispatcher Dispatcher
	logger     *observability.Logger
	interval   time.Duration
}

// NewDispatchSweepJob creates a new dispatch sweep job
func NewDispatchSweepJob(dispatcher Dispatcher, logger *observability.Logger, interval time.Duration) *DispatchSweepJob {
	if interval == 0 {
		interval = time.Minute
	}
	return &DispatchSweepJob{
		dispatcher: dispatcher,
		logger:     logger,
		interval:   interval,
	}
}

func (j *DispatchSweepJob) Name() string {
	return "automation_dispatch_sweep"
}

func (j *DispatchSweepJob) Schedule() time.Duration {
	return j.interval
}

func (j *DispatchSweepJob) Run(ctx context.Context) error {
	summary, err := j.dispatcher.ProcessDue(ctx)
	if err != nil {
		return fmt.Errorf("failed to process due executions: %w", err)
	}

	if summary.Sent+summary.Failed+summary.Skipped > 0 {
		j.logger.Info(ctx, fmt.Sprintf("Dispatch sweep finished: sent=%d failed=%d skipped=%d",
			summary.Sent, summary.Failed, summary.Skipped))
	}
	return nil
}
