package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-automation/internal/bootstrap"
	"crm-automation/internal/config"
	"crm-automation/internal/jobs/scheduler"
	"crm-automation/internal/jobs/scheduler/jobs"
	"crm-automation/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := observability.NewLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info(ctx, "Starting automation background worker...")

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	// Scans publish into the in-process pool when Kafka is disabled
	if err := deps.StartEventPool(ctx); err != nil {
		logger.Fatal(ctx, "failed to start event pool", err)
	}

	automation := cfg.Automation
	jobScheduler := scheduler.New(logger)
	jobScheduler.Register(jobs.NewDispatchSweepJob(deps.Dispatcher, logger, automation.SweepInterval))
	jobScheduler.Register(jobs.NewStaleClaimRecoveryJob(&deps.Store, logger, automation.StaleRecoverInterval, automation.StaleClaimTimeout))
	jobScheduler.Register(jobs.NewInactivityScanJob(&deps.Store, deps.Publisher, logger, automation.ScanInterval, 0))
	jobScheduler.Register(jobs.NewTimeBasedScanJob(&deps.Store, deps.Publisher, logger, automation.ScanInterval, 0))

	logger.Info(ctx, fmt.Sprintf(`Automation worker configuration:
  - Sweep interval: %s (batch %d, concurrency %d)
  - Scan interval: %s
  - Stale claim timeout: %s
  - Kafka enabled: %t`,
		automation.SweepInterval, automation.SweepBatchSize, automation.SweepConcurrency,
		automation.ScanInterval, automation.StaleClaimTimeout, cfg.Kafka.Enabled))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- jobScheduler.Start(ctx)
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info(ctx, "Received shutdown signal, stopping scheduled jobs...")
	cancel()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(context.Background(), "scheduler stopped with error", err)
	}

	cleanupCtx, cancelCleanup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelCleanup()
	deps.Cleanup(cleanupCtx)

	logger.Info(context.Background(), "Automation background worker stopped")
}
