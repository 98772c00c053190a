package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const sqlGetCooldown = `
SELECT rule_id, contact_id, last_sent_at, send_count, created_at, updated_at
FROM automation_cooldowns
WHERE rule_id = $1 AND contact_id = $2
`

// GetCooldown returns the (rule, contact) send record or ErrNotFound
func (s *Store) GetCooldown(ctx context.Context, ruleID, contactID uuid.UUID) (Cooldown, error) {
	var cooldown Cooldown
	err := s.db.GetContext(ctx, &cooldown, sqlGetCooldown, ruleID, contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cooldown{}, ErrNotFound
		}
		return Cooldown{}, fmt.Errorf("failed to get cooldown: %w", err)
	}
	return cooldown, nil
}

const sqlIncrementCooldown = `
INSERT INTO automation_cooldowns (rule_id, contact_id, last_sent_at, send_count)
VALUES ($1, $2, $3, 1)
ON CONFLICT (rule_id, contact_id)
DO UPDATE SET send_count = automation_cooldowns.send_count + 1,
              last_sent_at = EXCLUDED.last_sent_at,
              updated_at = CURRENT_TIMESTAMP
RETURNING rule_id, contact_id, last_sent_at, send_count, created_at, updated_at
`

// IncrementCooldown upserts the send record in one statement
func (s *Store) IncrementCooldown(ctx context.Context, ruleID, contactID uuid.UUID, sentAt time.Time) (Cooldown, error) {
	var cooldown Cooldown
	err := s.db.GetContext(ctx, &cooldown, sqlIncrementCooldown, ruleID, contactID, sentAt)
	if err != nil {
		return Cooldown{}, fmt.Errorf("failed to increment cooldown: %w", err)
	}
	return cooldown, nil
}
