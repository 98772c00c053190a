package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-automation/internal/bootstrap"
	"crm-automation/internal/config"
	"crm-automation/internal/observability"
	"crm-automation/internal/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := observability.NewLogger()
	ctx := context.Background()

	logger.Info(ctx, "Starting Kafka CRM event worker...")

	if !cfg.Kafka.Enabled {
		log.Fatal("Kafka is disabled; set KAFKA_ENABLED=true to run the event worker")
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	brokers := cfg.Kafka.BrokerList()
	eventConsumer := workers.NewConsumer(workers.ConsumerConfig{
		Brokers:       brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		Topic:         cfg.Kafka.Topic,
		NumWorkers:    cfg.WorkerPool.EventWorkers,
	}, deps.EventProcessor, logger)

	logger.Info(ctx, fmt.Sprintf(`Kafka event worker configuration:
  - Event workers: %d
  - Kafka brokers: %v
  - Kafka topic: %s
  - Consumer group: %s`,
		cfg.WorkerPool.EventWorkers, brokers, cfg.Kafka.Topic, cfg.Kafka.ConsumerGroup))

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "Starting CRM event consumer...")
		if err := eventConsumer.Start(ctx); err != nil && err != context.Canceled {
			logger.Error(ctx, "CRM event consumer error", err)
			cancel()
		}
	}()

	logger.Info(ctx, "Kafka event worker started successfully")

	// Wait for shutdown signal or a consumer failure
	select {
	case <-sigChan:
		logger.Info(ctx, "Received shutdown signal, stopping consumer...")
	case <-ctx.Done():
	}

	// Stop fetching and wait for in-flight events
	eventConsumer.Stop()

	cleanupCtx, cancelCleanup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelCleanup()
	deps.Cleanup(cleanupCtx)

	logger.Info(cleanupCtx, "Kafka event worker stopped")
}
