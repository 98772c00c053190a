package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const sqlIsUnsubscribed = `
SELECT EXISTS (
    SELECT 1 FROM email_unsubscribes WHERE organization_id = $1 AND lower(email) = $2
)
`

// IsUnsubscribed reports whether the address opted out of the organization's mail
func (s *Store) IsUnsubscribed(ctx context.Context, orgID uuid.UUID, email string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlIsUnsubscribed, orgID, normalizeEmail(email)); err != nil {
		return false, fmt.Errorf("failed to check unsubscribe list: %w", err)
	}
	return exists, nil
}

const sqlIsSuppressed = `
SELECT EXISTS (
    SELECT 1 FROM email_suppressions
    WHERE (organization_id = $1 OR organization_id IS NULL) AND lower(email) = $2
)
`

// IsSuppressed reports whether the address is on the org or global suppression list (bounces, complaints)
func (s *Store) IsSuppressed(ctx context.Context, orgID uuid.UUID, email string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlIsSuppressed, orgID, normalizeEmail(email)); err != nil {
		return false, fmt.Errorf("failed to check suppression list: %w", err)
	}
	return exists, nil
}

const sqlCreateUnsubscribe = `
INSERT INTO email_unsubscribes (organization_id, email, contact_id, execution_id, source)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (organization_id, email) DO NOTHING
`

// CreateUnsubscribeParams represents an opt-out
type CreateUnsubscribeParams struct {
	OrganizationID uuid.UUID
	Email          string
	ContactID      *uuid.UUID
	ExecutionID    *uuid.UUID
	Source         string
}

// CreateUnsubscribe records an opt-out; repeating it is a no-op
func (s *Store) CreateUnsubscribe(ctx context.Context, params CreateUnsubscribeParams) error {
	_, err := s.db.ExecContext(ctx, sqlCreateUnsubscribe,
		params.OrganizationID,
		normalizeEmail(params.Email),
		params.ContactID,
		params.ExecutionID,
		params.Source)
	if err != nil {
		return fmt.Errorf("failed to create unsubscribe: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
