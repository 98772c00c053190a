package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-automation/internal/observability"
)

// StaleClaimRecoveryJob requeues executions a crashed worker claimed but never finished
type StaleClaimRecoveryJob struct {
	store    ClaimStore
	logger   *observability.Logger
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
}

// NewStaleClaimRecoveryJob creates a new stale claim recovery job
func NewStaleClaimRecoveryJob(store ClaimStore, logger *observability.Logger, interval, timeout time.Duration) *StaleClaimRecoveryJob {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	if timeout == 0 {
		timeout = 15 * time.Minute
	}
	return &StaleClaimRecoveryJob{
		store:    store,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (j *StaleClaimRecoveryJob) Name() string {
	return "automation_stale_claim_recovery"
}

func (j *StaleClaimRecoveryJob) Schedule() time.Duration {
	return j.interval
}

func (j *StaleClaimRecoveryJob) Run(ctx context.Context) error {
	requeued, err := j.store.RequeueStaleClaims(ctx, j.now().Add(-j.timeout))
	if err != nil {
		return err
	}
	if requeued > 0 {
		j.logger.Warn(ctx, fmt.Sprintf("Requeued %d stale execution claims", requeued))
	}
	return nil
}
