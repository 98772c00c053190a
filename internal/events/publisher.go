package events

//go:generate go run go.uber.org/mock/mockgen@latest -source=publisher.go -destination=mocks_test.go -package=events

import (
	"context"
	"time"

	"crm-automation/internal/clients/kafka"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"
	"crm-automation/internal/workers"

	"github.com/google/uuid"
)

// Sink delivers CRM events, either to Kafka (*kafka.Producer) or to an in-process pool.
type Sink interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// PoolSink feeds events to a local worker pool when no event bus is configured
type PoolSink struct {
	Pool workers.WorkerPool
}

func (s PoolSink) PublishEvent(ctx context.Context, event kafka.EventMessage) error {
	return s.Pool.Submit(ctx, event)
}

// Publisher emits CRM events that the automation engine reacts to
type Publisher struct {
	sink   Sink
	logger *observability.Logger
	now    func() time.Time
}

// NewPublisher creates a new event publisher
func NewPublisher(sink Sink, logger *observability.Logger) *Publisher {
	return &Publisher{
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// PublishTrigger publishes a trigger event for one contact
func (p *Publisher) PublishTrigger(ctx context.Context, orgID, contactID uuid.UUID, triggerType string, triggerData map[string]interface{}) error {
	event := kafka.EventMessage{
		ID:          uuid.New().String(),
		OrgID:       orgID.String(),
		TriggerType: triggerType,
		ContactID:   contactID.String(),
		TriggerData: triggerData,
		Timestamp:   p.now().UTC().Format(time.RFC3339),
	}
	return p.sink.PublishEvent(ctx, event)
}

// Engagement is an open or click on an automation email
type Engagement struct {
	OrganizationID uuid.UUID
	ContactID      uuid.UUID
	ExecutionID    uuid.UUID
	RuleID         uuid.UUID
	Type           string
	EngagedAt      time.Time
	SentAt         *time.Time
	LinkURL        string
	LinkType       string
}

// PublishEngagement publishes an email_engagement event so rules can react to opens and clicks
func (p *Publisher) PublishEngagement(ctx context.Context, e Engagement) error {
	data := map[string]interface{}{
		"engagement_type": e.Type,
		"engaged_at":      e.EngagedAt.UTC().Format(time.RFC3339),
		"execution_id":    e.ExecutionID.String(),
		"rule_id":         e.RuleID.String(),
	}
	if e.SentAt != nil {
		data["sent_at"] = e.SentAt.UTC().Format(time.RFC3339)
	}
	if e.LinkURL != "" {
		data["link_url"] = e.LinkURL
		data["link_type"] = e.LinkType
	}

	return p.PublishTrigger(ctx, e.OrganizationID, e.ContactID, store.TriggerTypeEmailEngagement, data)
}
