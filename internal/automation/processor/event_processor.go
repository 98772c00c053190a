package processor

import (
	"context"
	"errors"

	"crm-automation/internal/observability"
	"crm-automation/internal/store"
	"crm-automation/internal/workers"

	"github.com/google/uuid"
)

// EventProcessor adapts AutomationProcessor to the event consumer and worker pool
type EventProcessor struct {
	processor *AutomationProcessor
	logger    *observability.Logger
}

func NewEventProcessor(processor *AutomationProcessor, logger *observability.Logger) *EventProcessor {
	return &EventProcessor{processor: processor, logger: logger}
}

func (e *EventProcessor) Name() string {
	return "automation"
}

// Process handles one CRM event. Events that can never succeed are logged and
// acknowledged; infrastructure errors are returned so the event is redelivered.
func (e *EventProcessor) Process(ctx context.Context, event workers.EventMessage) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: event.ID},
		observability.Field{Key: "trigger_type", Value: event.TriggerType},
	)

	orgID, err := uuid.Parse(event.OrgID)
	if err != nil {
		e.logger.Warn(ctx, "dropping event with invalid organization id")
		return nil
	}
	contactID, err := uuid.Parse(event.ContactID)
	if err != nil {
		e.logger.Warn(ctx, "dropping event with invalid contact id")
		return nil
	}

	if event.TriggerType == store.TriggerTypeTest {
		return e.processTest(ctx, orgID, contactID, event)
	}

	_, err = e.processor.HandleEvent(ctx, orgID, event.TriggerType, contactID, event.TriggerData)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrContactNotFound), errors.Is(err, ErrInvalidTriggerType):
		e.logger.Warn(ctx, "dropping event: "+err.Error())
		return nil
	default:
		return err
	}
}

func (e *EventProcessor) processTest(ctx context.Context, orgID, contactID uuid.UUID, event workers.EventMessage) error {
	ruleID, err := uuid.Parse(event.RuleID)
	if err != nil {
		e.logger.Warn(ctx, "dropping test event without a valid rule id")
		return nil
	}
	mode := event.Mode
	if mode == "" {
		mode = ModeSend
	}

	_, err = e.processor.TestRule(ctx, orgID, ruleID, contactID, mode, event.TriggerData)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRuleNotFound), errors.Is(err, ErrContactNotFound),
		errors.Is(err, ErrTemplateNotFound), errors.Is(err, ErrInvalidTestMode), errors.Is(err, ErrNoEmail):
		e.logger.Warn(ctx, "dropping test event: "+err.Error())
		return nil
	default:
		return err
	}
}
