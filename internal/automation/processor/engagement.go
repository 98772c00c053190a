package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crm-automation/internal/automation/tracking"
	"crm-automation/internal/events"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// ClientInfo describes the client that opened or clicked an email
type ClientInfo struct {
	IP         string
	UserAgent  string
	DeviceType string
}

// RecordOpen stores an open for the execution and re-emits it as an engagement event.
// Repeated opens are all recorded.
func (p *AutomationProcessor) RecordOpen(ctx context.Context, executionID uuid.UUID, client ClientInfo) error {
	return p.recordEngagement(ctx, executionID, store.EmailEventOpened, "", "", client)
}

// RecordClick verifies the click signature before recording it. Callers redirect to
// target only when no error is returned.
func (p *AutomationProcessor) RecordClick(ctx context.Context, executionID uuid.UUID, target, linkType, signature string, client ClientInfo) error {
	if err := p.components.Tracker.VerifyClick(executionID, target, signature); err != nil {
		return ErrInvalidSignature
	}
	if linkType != store.LinkTypeCTA {
		linkType = store.LinkTypeLink
	}
	return p.recordEngagement(ctx, executionID, store.EmailEventClicked, target, linkType, client)
}

func (p *AutomationProcessor) recordEngagement(ctx context.Context, executionID uuid.UUID, eventType, linkURL, linkType string, client ClientInfo) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "execution_id", Value: executionID},
		observability.Field{Key: "event_type", Value: eventType},
	)

	execution, err := p.store.GetAutomationExecutionByID(ctx, executionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrExecutionNotFound
		}
		p.logger.Error(ctx, "failed to get automation execution", err)
		return fmt.Errorf("failed to get automation execution: %w", err)
	}

	params := store.CreateEmailEventParams{
		ExecutionID: executionID,
		EventType:   eventType,
		ClientIP:    client.IP,
		UserAgent:   client.UserAgent,
		DeviceType:  client.DeviceType,
	}
	if linkURL != "" {
		params.LinkURL = &linkURL
		params.LinkType = &linkType
	}

	event, err := p.store.CreateEmailEvent(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to record email event", err)
		return fmt.Errorf("failed to record email event: %w", err)
	}

	// test sends are not fed back into the engine
	if p.components.Publisher == nil || execution.TriggerType == store.TriggerTypeTest {
		return nil
	}

	engagedAt := event.CreatedAt
	if engagedAt.IsZero() {
		engagedAt = p.now()
	}

	err = p.components.Publisher.PublishEngagement(ctx, events.Engagement{
		OrganizationID: execution.OrganizationID,
		ContactID:      execution.ContactID,
		ExecutionID:    execution.ID,
		RuleID:         execution.RuleID,
		Type:           eventType,
		EngagedAt:      engagedAt,
		SentAt:         execution.SentAt,
		LinkURL:        linkURL,
		LinkType:       linkType,
	})
	if err != nil {
		// the event is stored; only the follow-up trigger is lost
		p.logger.Error(ctx, "failed to publish engagement event", err)
	}
	return nil
}

// Unsubscribe records the opt-out carried by a signed unsubscribe token
func (p *AutomationProcessor) Unsubscribe(ctx context.Context, token, source string) (tracking.UnsubscribeClaims, error) {
	claims, err := p.components.Tracker.ParseUnsubscribeToken(strings.TrimSpace(token))
	if err != nil {
		return tracking.UnsubscribeClaims{}, ErrInvalidToken
	}

	orgID, err := uuid.Parse(claims.OrganizationID)
	if err != nil || claims.Email == "" {
		return tracking.UnsubscribeClaims{}, ErrInvalidToken
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "unsubscribe_source", Value: source},
	)

	params := store.CreateUnsubscribeParams{
		OrganizationID: orgID,
		Email:          claims.Email,
		ContactID:      optionalUUID(claims.ContactID),
		ExecutionID:    optionalUUID(claims.ExecutionID),
		Source:         source,
	}
	if err := p.store.CreateUnsubscribe(ctx, params); err != nil {
		p.logger.Error(ctx, "failed to record unsubscribe", err)
		return tracking.UnsubscribeClaims{}, fmt.Errorf("failed to record unsubscribe: %w", err)
	}

	p.logger.Info(ctx, "contact unsubscribed")
	return claims, nil
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
