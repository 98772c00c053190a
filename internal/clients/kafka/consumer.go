package kafka

import (
	"github.com/segmentio/kafka-go"
)

// ConsumerConfig contains configuration for a Kafka group reader
type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// NewReader creates a group reader with manual offset commits. Callers commit
// each message only after it has been handled.
func NewReader(config ConsumerConfig) *kafka.Reader {
	if config.MinBytes == 0 {
		config.MinBytes = 10e3 // 10KB
	}
	if config.MaxBytes == 0 {
		config.MaxBytes = 10e6 // 10MB
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  config.Brokers,
		Topic:    config.Topic,
		GroupID:  config.GroupID,
		MinBytes: config.MinBytes,
		MaxBytes: config.MaxBytes,
		// Start reading from the earliest message if no offset exists
		StartOffset:    kafka.FirstOffset,
		CommitInterval: 0,
	})
}
