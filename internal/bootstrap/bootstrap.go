package bootstrap

import (
	"context"
	"fmt"

	"crm-automation/internal/automation/conditions"
	"crm-automation/internal/automation/cooldown"
	"crm-automation/internal/automation/dispatch"
	automationHandler "crm-automation/internal/automation/handler"
	automationProcessor "crm-automation/internal/automation/processor"
	"crm-automation/internal/automation/scheduler"
	"crm-automation/internal/automation/templating"
	"crm-automation/internal/automation/tracking"
	kafkaClient "crm-automation/internal/clients/kafka"
	"crm-automation/internal/clients/mail"
	redisClient "crm-automation/internal/clients/redis"
	"crm-automation/internal/config"
	"crm-automation/internal/email"
	emailTemplateHandler "crm-automation/internal/emailtemplates/handler"
	emailTemplateProcessor "crm-automation/internal/emailtemplates/processor"
	"crm-automation/internal/events"
	"crm-automation/internal/observability"
	"crm-automation/internal/ratelimit"
	"crm-automation/internal/store"
	"crm-automation/internal/workers"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Engine
	AutomationProcessor *automationProcessor.AutomationProcessor
	EventProcessor      *automationProcessor.EventProcessor
	Dispatcher          *dispatch.Worker
	Publisher           *events.Publisher

	// Handlers
	AutomationHandler    automationHandler.Handler
	EmailTemplateHandler emailTemplateHandler.Handler
	IngestRateLimiter    *ratelimit.Service

	// EventPool runs published events in-process; nil when Kafka carries them
	EventPool workers.WorkerPool

	// Clients (for cleanup)
	KafkaProducer *kafkaClient.Producer
	Redis         *redisClient.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize clients
	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}
	emailService := email.New(mailClient, cfg.Services.DefaultEmailSender, logger)

	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	var locker dispatch.Locker
	var window ratelimit.Window
	if deps.Redis != nil {
		locker = deps.Redis
		window = deps.Redis
	}
	deps.IngestRateLimiter = ratelimit.NewService(window, cfg.Server.IngestRateLimitRPM, logger)

	// Engine components
	tracker := tracking.New(cfg.Services.TrackingBaseURL, cfg.Auth.TrackingSecret)
	resolver := templating.New(&deps.Store, logger)

	deps.Dispatcher = dispatch.New(&deps.Store, emailService, resolver, tracker, locker, dispatch.Config{
		BatchSize:         cfg.Automation.SweepBatchSize,
		Concurrency:       cfg.Automation.SweepConcurrency,
		DefaultMaxRetries: cfg.Automation.DefaultMaxRetries,
		DefaultDailyLimit: cfg.Automation.DefaultDailyLimit,
		LockTTL:           2 * cfg.Automation.SweepInterval,
	}, logger)

	executionScheduler := scheduler.New(&deps.Store, deps.Dispatcher, scheduler.Config{
		DefaultMaxRetries: cfg.Automation.DefaultMaxRetries,
		DefaultDailyLimit: cfg.Automation.DefaultDailyLimit,
	}, logger)

	// The event processor is handed the processor's address before the processor is
	// built: the in-process pool it feeds is also where the processor publishes.
	deps.AutomationProcessor = &automationProcessor.AutomationProcessor{}
	deps.EventProcessor = automationProcessor.NewEventProcessor(deps.AutomationProcessor, logger)

	var sink events.Sink
	if cfg.Kafka.Enabled {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.BrokerList(),
			Topic:   cfg.Kafka.Topic,
		}, logger)
		sink = deps.KafkaProducer
	} else {
		poolConfig := workers.DefaultWorkerPoolConfig()
		poolConfig.NumWorkers = cfg.WorkerPool.EventWorkers
		deps.EventPool = workers.NewWorkerPool(poolConfig, deps.EventProcessor, logger)
		sink = events.PoolSink{Pool: deps.EventPool}
	}
	deps.Publisher = events.NewPublisher(sink, logger)

	*deps.AutomationProcessor = automationProcessor.New(&deps.Store, automationProcessor.Components{
		Cooldown:     cooldown.New(&deps.Store, logger),
		Conditions:   conditions.New(&deps.Store, logger),
		Scheduler:    executionScheduler,
		Dispatcher:   deps.Dispatcher,
		Personalizer: resolver,
		Tracker:      tracker,
		Publisher:    deps.Publisher,
	}, logger)
	deps.AutomationHandler = automationHandler.New(deps.AutomationProcessor, logger)

	// Initialize email template processor and handler
	emailTemplateProc := emailTemplateProcessor.New(&deps.Store, resolver, emailService, logger)
	deps.EmailTemplateHandler = emailTemplateHandler.New(&emailTemplateProc, logger)

	logger.Info(ctx, fmt.Sprintf("Dependencies initialized (kafka=%t, redis=%t)", cfg.Kafka.Enabled, deps.Redis != nil))
	return deps, nil
}

// StartEventPool starts the in-process event pool when Kafka is disabled
func (d *Dependencies) StartEventPool(ctx context.Context) error {
	if d.EventPool == nil {
		return nil
	}
	return d.EventPool.Start(ctx)
}

// Cleanup drains queued events and closes all resources that need cleanup
func (d *Dependencies) Cleanup(ctx context.Context) {
	if d.EventPool != nil {
		if err := d.EventPool.Drain(ctx); err != nil {
			d.Logger.Error(ctx, "failed to drain event pool", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
