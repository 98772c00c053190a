package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlTryIncrementDailySend = `
INSERT INTO automation_daily_sends (organization_id, contact_id, send_date, send_count)
VALUES ($1, $2, $3::date, 1)
ON CONFLICT (organization_id, contact_id, send_date)
DO UPDATE SET send_count = automation_daily_sends.send_count + 1,
              updated_at = CURRENT_TIMESTAMP
WHERE automation_daily_sends.send_count < $4
RETURNING send_count
`

// TryIncrementDailySend takes one of the contact's daily slots if fewer than limit are used.
// sendDate is YYYY-MM-DD in the organization's timezone.
func (s *Store) TryIncrementDailySend(ctx context.Context, orgID, contactID uuid.UUID, sendDate string, limit int) (bool, error) {
	if limit <= 0 {
		return false, nil
	}
	var count int
	err := s.db.GetContext(ctx, &count, sqlTryIncrementDailySend, orgID, contactID, sendDate, limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to increment daily send count: %w", err)
	}
	return true, nil
}

const sqlReleaseDailySend = `
UPDATE automation_daily_sends
SET send_count = GREATEST(send_count - 1, 0), updated_at = CURRENT_TIMESTAMP
WHERE organization_id = $1 AND contact_id = $2 AND send_date = $3::date
`

// ReleaseDailySend gives back a slot taken by an attempt that did not send
func (s *Store) ReleaseDailySend(ctx context.Context, orgID, contactID uuid.UUID, sendDate string) error {
	if _, err := s.db.ExecContext(ctx, sqlReleaseDailySend, orgID, contactID, sendDate); err != nil {
		return fmt.Errorf("failed to release daily send: %w", err)
	}
	return nil
}

const sqlGetDailySendCount = `
SELECT COALESCE(
    (SELECT send_count FROM automation_daily_sends
     WHERE organization_id = $1 AND contact_id = $2 AND send_date = $3::date), 0)
`

// GetDailySendCount reads the contact's sends for the day without taking a slot
func (s *Store) GetDailySendCount(ctx context.Context, orgID, contactID uuid.UUID, sendDate string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlGetDailySendCount, orgID, contactID, sendDate); err != nil {
		return 0, fmt.Errorf("failed to get daily send count: %w", err)
	}
	return count, nil
}
