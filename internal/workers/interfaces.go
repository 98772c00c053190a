package workers

import (
	"context"

	kafka "crm-automation/internal/clients/kafka"
)

// EventMessage is the CRM event envelope read from the bus.
type EventMessage = kafka.EventMessage

// EventProcessor handles one CRM event. Events are redelivered when Process fails,
// so implementations must tolerate seeing the same event twice.
type EventProcessor interface {
	Process(ctx context.Context, event EventMessage) error

	// Name is used in logs
	Name() string
}

// EventConsumer reads CRM events from Kafka and hands them to an EventProcessor.
type EventConsumer interface {
	// Start blocks until Stop is called or ctx is done.
	Start(ctx context.Context) error

	// Stop stops fetching and waits for in-flight events.
	Stop()
}

// WorkerPool runs CRM events in-process.
type WorkerPool interface {
	Start(ctx context.Context) error

	// Submit blocks while the contact's shard is full.
	Submit(ctx context.Context, event EventMessage) error

	// Drain stops accepting events and waits for queued ones to finish.
	Drain(ctx context.Context) error

	// Stop abandons queued events.
	Stop()
}
