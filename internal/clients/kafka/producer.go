package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-automation/internal/observability"

	"github.com/segmentio/kafka-go"
)

// Producer publishes CRM events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *observability.Logger
}

// ProducerConfig contains configuration for Kafka producer
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a new Kafka producer
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:  kafka.TCP(config.Brokers...),
		Topic: config.Topic,
		// Hash on the contact key so one contact's events stay ordered within a partition
		Balancer:    &kafka.Hash{},
		Async:       false,
		Compression: kafka.Snappy,
		BatchSize:   100,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// EventMessage is the CRM event envelope carried on the bus. Field names follow the
// inbound event contract so producers outside this service can publish directly.
type EventMessage struct {
	ID          string                 `json:"id"`
	OrgID       string                 `json:"orgId"`
	TriggerType string                 `json:"triggerType"`
	ContactID   string                 `json:"contactId"`
	TriggerData map[string]interface{} `json:"triggerData"`
	// RuleID and Mode are only used by test events
	RuleID    string `json:"ruleId,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (e EventMessage) message() (kafka.Message, error) {
	eventBytes, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.ContactID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "trigger_type", Value: []byte(e.TriggerType)},
			{Key: "organization_id", Value: []byte(e.OrgID)},
		},
	}, nil
}

// PublishEvent publishes an event to Kafka
func (p *Producer) PublishEvent(ctx context.Context, event EventMessage) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "trigger_type", Value: event.TriggerType},
		observability.Field{Key: "event_id", Value: event.ID},
		observability.Field{Key: "organization_id", Value: event.OrgID},
	)

	msg, err := event.message()
	if err != nil {
		p.logger.Error(ctx, "failed to marshal event", err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to write message to kafka", err)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.logger.Debug(ctx, fmt.Sprintf("published %s event to kafka", event.TriggerType))
	return nil
}

// PublishEvents publishes multiple events in one batch. Events that fail to marshal are skipped.
func (p *Producer) PublishEvents(ctx context.Context, events []EventMessage) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := event.message()
		if err != nil {
			p.logger.Error(ctx, fmt.Sprintf("failed to marshal event %s", event.ID), err)
			continue
		}
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error(ctx, "failed to write messages to kafka", err)
		return fmt.Errorf("failed to write messages to kafka: %w", err)
	}

	p.logger.Info(ctx, fmt.Sprintf("published %d events to kafka", len(messages)))
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
