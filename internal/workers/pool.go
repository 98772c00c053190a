package workers

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"crm-automation/internal/observability"
)

var (
	ErrPoolNotStarted   = errors.New("worker pool not started")
	ErrPoolShuttingDown = errors.New("worker pool is shutting down")
)

// ProcessingResult is reported to OnResult after each event.
type ProcessingResult struct {
	Event EventMessage
	Error error
}

type ResultCallback func(result ProcessingResult)

// WorkerPoolConfig holds configuration for the in-process worker pool.
type WorkerPoolConfig struct {
	NumWorkers   int
	QueueSize    int
	DrainTimeout time.Duration

	// OnResult is optional
	OnResult ResultCallback
}

// DefaultWorkerPoolConfig returns sensible defaults for a worker pool.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		NumWorkers:   10,
		QueueSize:    100,
		DrainTimeout: 30 * time.Second,
	}
}

// pool runs CRM events in-process when no event bus is configured. Like the Kafka
// consumer it shards by contact so one contact's events are handled in submit order.
type pool struct {
	config    WorkerPoolConfig
	processor EventProcessor
	logger    *observability.Logger

	shards []chan EventMessage
	wg     sync.WaitGroup

	mu       sync.RWMutex
	started  bool
	closed   bool
	cancelFn context.CancelFunc
}

// NewWorkerPool creates a new worker pool for processing events.
func NewWorkerPool(config WorkerPoolConfig, processor EventProcessor, logger *observability.Logger) WorkerPool {
	defaults := DefaultWorkerPoolConfig()
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}

	shards := make([]chan EventMessage, config.NumWorkers)
	for i := range shards {
		shards[i] = make(chan EventMessage, config.QueueSize)
	}

	return &pool{
		config:    config,
		processor: processor,
		logger:    logger,
		shards:    shards,
	}
}

// Start launches one worker per shard.
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	if p.closed {
		return ErrPoolShuttingDown
	}

	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancelFn = cancel
	p.started = true

	for i, shard := range p.shards {
		p.wg.Add(1)
		go p.worker(workerCtx, i, shard)
	}

	p.logger.Info(ctx, fmt.Sprintf("Started %d workers for %s processor", len(p.shards), p.processor.Name()))
	return nil
}

// Submit queues event on its contact's shard, blocking while that shard is full.
func (p *pool) Submit(ctx context.Context, event EventMessage) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.closed {
		return ErrPoolShuttingDown
	}

	select {
	case p.shards[p.shardFor(event.ContactID)] <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pool) shardFor(contactID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contactID))
	return int(h.Sum32() % uint32(len(p.shards)))
}

// Drain stops accepting events and waits for queued ones, up to DrainTimeout.
func (p *pool) Drain(ctx context.Context) error {
	if !p.close() {
		return ErrPoolNotStarted
	}

	p.logger.Info(ctx, fmt.Sprintf("Draining worker pool for %s processor", p.processor.Name()))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	drainCtx, cancel := context.WithTimeout(ctx, p.config.DrainTimeout)
	defer cancel()

	select {
	case <-done:
		p.logger.Info(ctx, fmt.Sprintf("Drained worker pool for %s processor", p.processor.Name()))
		return nil
	case <-drainCtx.Done():
		p.logger.Warn(ctx, fmt.Sprintf("Drain timeout exceeded for %s processor, forcing shutdown", p.processor.Name()))
		p.Stop()
		return fmt.Errorf("drain timeout exceeded")
	}
}

// Stop abandons queued events. The event a worker is processing still completes.
func (p *pool) Stop() {
	p.close()
	p.mu.Lock()
	if p.cancelFn != nil {
		p.cancelFn()
	}
	p.mu.Unlock()
}

// close shuts the shards once. It reports false when the pool was never started.
func (p *pool) close() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return false
	}
	if !p.closed {
		p.closed = true
		for _, shard := range p.shards {
			close(shard)
		}
	}
	return true
}

func (p *pool) worker(ctx context.Context, workerID int, shard <-chan EventMessage) {
	defer p.wg.Done()

	workerCtx := observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: workerID},
		observability.Field{Key: "processor", Value: p.processor.Name()},
	)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-shard:
			if !ok {
				return
			}

			eventCtx := observability.WithFields(workerCtx,
				observability.Field{Key: "event_id", Value: event.ID},
				observability.Field{Key: "trigger_type", Value: event.TriggerType},
				observability.Field{Key: "organization_id", Value: event.OrgID},
				observability.Field{Key: "contact_id", Value: event.ContactID},
			)

			err := p.processor.Process(context.WithoutCancel(eventCtx), event)
			if err != nil {
				p.logger.Error(eventCtx, "failed to process event", err)
			}

			if p.config.OnResult != nil {
				p.config.OnResult(ProcessingResult{Event: event, Error: err})
			}
		}
	}
}
