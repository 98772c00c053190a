package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	kafka "crm-automation/internal/clients/kafka"
	"crm-automation/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
)

var ErrMalformedEvent = errors.New("malformed crm event")

// ConsumerConfig holds configuration for the CRM event consumer.
type ConsumerConfig struct {
	Brokers       []string
	ConsumerGroup string
	Topic         string

	// NumWorkers is the number of shards. Events of one contact always land on the same shard.
	NumWorkers int

	// QueueSize is the buffer of each shard.
	QueueSize int

	// DrainTimeout bounds how long Stop waits for in-flight events.
	DrainTimeout time.Duration
}

// DefaultConsumerConfig returns sensible defaults for a consumer.
func DefaultConsumerConfig(brokers []string, consumerGroup, topic string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:       brokers,
		ConsumerGroup: consumerGroup,
		Topic:         topic,
		NumWorkers:    10,
		QueueSize:     100,
		DrainTimeout:  30 * time.Second,
	}
}

// eventWithMsg pairs an event with its Kafka message for offset tracking.
type eventWithMsg struct {
	event EventMessage
	msg   kafkago.Message
}

// messageReader is the part of *kafkago.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type consumer struct {
	config    ConsumerConfig
	reader    messageReader
	processor EventProcessor
	logger    *observability.Logger

	shards []chan eventWithMsg

	fetchCtx    context.Context
	cancelFetch context.CancelFunc
	doneCh      chan struct{}
	stopping    atomic.Bool
	stopOnce    sync.Once
}

// NewConsumer creates a consumer that fans CRM events out to per-contact shards.
func NewConsumer(config ConsumerConfig, processor EventProcessor, logger *observability.Logger) EventConsumer {
	reader := kafka.NewReader(kafka.ConsumerConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
		GroupID: config.ConsumerGroup,
	})
	return newConsumer(config, reader, processor, logger)
}

func newConsumer(config ConsumerConfig, reader messageReader, processor EventProcessor, logger *observability.Logger) *consumer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = 10
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 100
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = 30 * time.Second
	}

	shards := make([]chan eventWithMsg, config.NumWorkers)
	for i := range shards {
		shards[i] = make(chan eventWithMsg, config.QueueSize)
	}

	fetchCtx, cancel := context.WithCancel(context.Background())
	return &consumer{
		config:      config,
		reader:      reader,
		processor:   processor,
		logger:      logger,
		shards:      shards,
		fetchCtx:    fetchCtx,
		cancelFetch: cancel,
		doneCh:      make(chan struct{}),
	}
}

// Start consumes until Stop is called or ctx is done. Either only stops fetching;
// events already handed to a shard are processed to completion.
func (c *consumer) Start(ctx context.Context) error {
	defer close(c.doneCh)

	stopFetch := context.AfterFunc(ctx, c.cancelFetch)
	defer stopFetch()

	fetchCtx := observability.WithFields(c.fetchCtx,
		observability.Field{Key: "consumer_group", Value: c.config.ConsumerGroup},
		observability.Field{Key: "topic", Value: c.config.Topic},
		observability.Field{Key: "processor", Value: c.processor.Name()},
	)

	c.logger.Info(fetchCtx, fmt.Sprintf("Starting consumer for %s with %d workers", c.processor.Name(), len(c.shards)))

	workCtx := context.WithoutCancel(fetchCtx)
	var workerWg sync.WaitGroup
	for i, shard := range c.shards {
		workerWg.Add(1)
		go c.worker(workCtx, &workerWg, i, shard)
	}

	c.fetchLoop(fetchCtx)

	for _, shard := range c.shards {
		close(shard)
	}

	done := make(chan struct{})
	go func() {
		workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info(fetchCtx, "All workers finished processing")
	case <-time.After(c.config.DrainTimeout):
		c.logger.Warn(fetchCtx, "Drain timeout - some events may not have completed")
	}

	if err := c.reader.Close(); err != nil {
		c.logger.Error(fetchCtx, "Failed to close Kafka reader", err)
	}

	c.logger.Info(fetchCtx, fmt.Sprintf("Consumer stopped for %s", c.processor.Name()))
	return nil
}

func (c *consumer) fetchLoop(ctx context.Context) {
	for {
		if c.stopping.Load() {
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if c.stopping.Load() || ctx.Err() != nil {
				return
			}
			c.logger.Error(ctx, "Failed to fetch message from Kafka", err)
			time.Sleep(1 * time.Second)
			continue
		}

		event, err := decodeEvent(msg.Value)
		if err != nil {
			// Poison messages are committed so the partition keeps moving
			msgCtx := observability.WithFields(ctx,
				observability.Field{Key: "partition", Value: msg.Partition},
				observability.Field{Key: "offset", Value: msg.Offset},
			)
			c.logger.Error(msgCtx, "Failed to decode event, skipping", err)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		// Shards are only closed after this loop returns, and their workers keep
		// draining, so a fetched message is never dropped here.
		c.shards[c.shardFor(event)] <- eventWithMsg{event: event, msg: msg}
	}
}

func (c *consumer) shardFor(event EventMessage) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(event.ContactID))
	return int(h.Sum32() % uint32(len(c.shards)))
}

func decodeEvent(value []byte) (EventMessage, error) {
	var event EventMessage
	if err := json.Unmarshal(value, &event); err != nil {
		return EventMessage{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if event.OrgID == "" || event.ContactID == "" || event.TriggerType == "" {
		return EventMessage{}, fmt.Errorf("%w: orgId, contactId and triggerType are required", ErrMalformedEvent)
	}
	return event, nil
}

// worker drains one shard until it is closed.
func (c *consumer) worker(ctx context.Context, wg *sync.WaitGroup, id int, shard <-chan eventWithMsg) {
	defer wg.Done()

	ctx = observability.WithFields(ctx, observability.Field{Key: "worker_id", Value: id})

	for e := range shard {
		eventCtx := observability.WithFields(ctx,
			observability.Field{Key: "event_id", Value: e.event.ID},
			observability.Field{Key: "trigger_type", Value: e.event.TriggerType},
			observability.Field{Key: "organization_id", Value: e.event.OrgID},
			observability.Field{Key: "contact_id", Value: e.event.ContactID},
		)

		if err := c.processor.Process(eventCtx, e.event); err != nil {
			c.logger.Error(eventCtx, "Failed to process event", err)
			continue
		}
		if c.reader != nil {
			if err := c.reader.CommitMessages(ctx, e.msg); err != nil {
				c.logger.Error(eventCtx, "Failed to commit offset", err)
			}
		}
	}
}

// Stop signals the fetch loop and returns once Start has drained and exited.
func (c *consumer) Stop() {
	c.stopOnce.Do(func() {
		logCtx := observability.WithFields(context.Background(),
			observability.Field{Key: "processor", Value: c.processor.Name()},
		)
		c.logger.Info(logCtx, fmt.Sprintf("Stopping consumer for %s", c.processor.Name()))

		c.stopping.Store(true)
		c.cancelFetch()
		<-c.doneCh
	})
}
