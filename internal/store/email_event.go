package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateEmailEventParams represents an open or click to record
type CreateEmailEventParams struct {
	ExecutionID uuid.UUID
	EventType   string
	LinkURL     *string
	LinkType    *string
	ClientIP    string
	UserAgent   string
	DeviceType  string
}

const sqlCreateEmailEvent = `
INSERT INTO automation_email_events (execution_id, event_type, link_url, link_type, client_ip, user_agent, device_type)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, execution_id, event_type, link_url, link_type, client_ip, user_agent, device_type, created_at
`

// CreateEmailEvent records an engagement with an automation email
func (s *Store) CreateEmailEvent(ctx context.Context, params CreateEmailEventParams) (EmailEvent, error) {
	var event EmailEvent
	err := s.db.GetContext(ctx, &event, sqlCreateEmailEvent,
		params.ExecutionID,
		params.EventType,
		params.LinkURL,
		params.LinkType,
		params.ClientIP,
		params.UserAgent,
		params.DeviceType)
	if err != nil {
		return EmailEvent{}, fmt.Errorf("failed to create email event: %w", err)
	}
	return event, nil
}
