package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const executionColumns = `id, organization_id, rule_id, contact_id, trigger_type, trigger_data, status, scheduled_for,
sent_at, email_subject, error_message, retry_count, max_retries, next_retry_at, ab_variant_id, ab_variant,
created_at, updated_at`

// CreateAutomationExecutionParams represents parameters for creating an execution
type CreateAutomationExecutionParams struct {
	OrganizationID uuid.UUID
	RuleID         uuid.UUID
	ContactID      uuid.UUID
	TriggerType    string
	TriggerData    JSONB
	Status         string
	ScheduledFor   time.Time
	MaxRetries     int
	ABVariantID    *uuid.UUID
	ABVariant      *string
}

const sqlCreateAutomationExecution = `
INSERT INTO automation_executions (organization_id, rule_id, contact_id, trigger_type, trigger_data, status,
    scheduled_for, max_retries, ab_variant_id, ab_variant)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + executionColumns

// CreateAutomationExecution persists a new execution with its trigger snapshot
func (s *Store) CreateAutomationExecution(ctx context.Context, params CreateAutomationExecutionParams) (AutomationExecution, error) {
	var execution AutomationExecution
	err := s.db.GetContext(ctx, &execution, sqlCreateAutomationExecution,
		params.OrganizationID,
		params.RuleID,
		params.ContactID,
		params.TriggerType,
		params.TriggerData,
		params.Status,
		params.ScheduledFor,
		params.MaxRetries,
		params.ABVariantID,
		params.ABVariant)
	if err != nil {
		return AutomationExecution{}, fmt.Errorf("failed to create automation execution: %w", err)
	}
	return execution, nil
}

const sqlGetAutomationExecutionByID = `
SELECT ` + executionColumns + `
FROM automation_executions
WHERE id = $1
`

// GetAutomationExecutionByID retrieves an execution
func (s *Store) GetAutomationExecutionByID(ctx context.Context, executionID uuid.UUID) (AutomationExecution, error) {
	var execution AutomationExecution
	err := s.db.GetContext(ctx, &execution, sqlGetAutomationExecutionByID, executionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AutomationExecution{}, ErrNotFound
		}
		return AutomationExecution{}, fmt.Errorf("failed to get automation execution: %w", err)
	}
	return execution, nil
}

const sqlListExecutionsByRule = `
SELECT ` + executionColumns + `
FROM automation_executions
WHERE rule_id = $1 AND organization_id = $2
  AND ($3::text IS NULL OR status = $3)
ORDER BY created_at DESC
LIMIT $4 OFFSET $5
`

// ListExecutionsByRuleParams pages through a rule's executions
type ListExecutionsByRuleParams struct {
	OrganizationID uuid.UUID
	RuleID         uuid.UUID
	Status         *string
	Limit          int
	Offset         int
}

// ListExecutionsByRule returns a page of a rule's executions, newest first
func (s *Store) ListExecutionsByRule(ctx context.Context, params ListExecutionsByRuleParams) ([]AutomationExecution, error) {
	executions := []AutomationExecution{}
	err := s.db.SelectContext(ctx, &executions, sqlListExecutionsByRule,
		params.RuleID, params.OrganizationID, params.Status, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation executions: %w", err)
	}
	return executions, nil
}

const sqlGetDueExecutions = `
SELECT ` + executionColumns + `
FROM automation_executions
WHERE status = 'scheduled' AND scheduled_for <= $1
ORDER BY created_at ASC
LIMIT $2
`

// GetDueExecutions returns scheduled executions whose time has come, oldest first
func (s *Store) GetDueExecutions(ctx context.Context, now time.Time, limit int) ([]AutomationExecution, error) {
	var executions []AutomationExecution
	err := s.db.SelectContext(ctx, &executions, sqlGetDueExecutions, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due executions: %w", err)
	}
	return executions, nil
}

const sqlClaimExecution = `
UPDATE automation_executions
SET status = 'pending', updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = $2
RETURNING id
`

// ClaimExecution moves an execution to pending only if it is still in fromStatus.
// Returns false when another worker got there first.
func (s *Store) ClaimExecution(ctx context.Context, executionID uuid.UUID, fromStatus string) (bool, error) {
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, sqlClaimExecution, executionID, fromStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to claim execution: %w", err)
	}
	return true, nil
}

const sqlMarkExecutionSent = `
UPDATE automation_executions
SET status = 'sent', sent_at = $2, email_subject = $3, error_message = NULL, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = 'pending'
`

// MarkExecutionSent settles a claimed execution as delivered
func (s *Store) MarkExecutionSent(ctx context.Context, executionID uuid.UUID, sentAt time.Time, subject string) error {
	return s.execTransition(ctx, "mark execution sent", sqlMarkExecutionSent, executionID, sentAt, subject)
}

const sqlScheduleExecutionRetry = `
UPDATE automation_executions
SET status = 'scheduled', retry_count = $2, next_retry_at = $3, scheduled_for = $3, error_message = $4,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = 'pending'
`

// ScheduleExecutionRetry puts a claimed execution back on the schedule after a transient failure
func (s *Store) ScheduleExecutionRetry(ctx context.Context, executionID uuid.UUID, retryCount int, nextRetryAt time.Time, errorMessage string) error {
	return s.execTransition(ctx, "schedule execution retry", sqlScheduleExecutionRetry, executionID, retryCount, nextRetryAt, errorMessage)
}

const sqlMarkExecutionFailed = `
UPDATE automation_executions
SET status = 'failed', error_message = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = $2
`

// MarkExecutionFailed terminally fails an execution still in fromStatus.
// Returns ErrNotFound when the execution moved on in the meantime.
func (s *Store) MarkExecutionFailed(ctx context.Context, executionID uuid.UUID, fromStatus, errorMessage string) error {
	return s.execTransition(ctx, "mark execution failed", sqlMarkExecutionFailed, executionID, fromStatus, errorMessage)
}

const sqlRescheduleExecution = `
UPDATE automation_executions
SET status = 'scheduled', scheduled_for = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = $2
`

// RescheduleExecution defers an execution without touching its retry count
func (s *Store) RescheduleExecution(ctx context.Context, executionID uuid.UUID, fromStatus string, at time.Time) error {
	return s.execTransition(ctx, "reschedule execution", sqlRescheduleExecution, executionID, fromStatus, at)
}

const sqlRequeueStaleClaims = `
UPDATE automation_executions
SET status = 'scheduled', scheduled_for = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
WHERE status = 'pending' AND updated_at < $1
`

// RequeueStaleClaims returns executions stuck in pending since before cutoff to the schedule
func (s *Store) RequeueStaleClaims(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqlRequeueStaleClaims, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale claims: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (s *Store) execTransition(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
