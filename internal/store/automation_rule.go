package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const ruleColumns = `id, organization_id, name, description, trigger_type, trigger_config, conditions, condition_logic,
email_template_id, send_delay_minutes, max_sends_per_contact, cooldown_period_days, enforce_business_hours,
is_active, priority, ab_test_enabled, total_triggered, total_sent, total_failed, created_at, updated_at`

// CreateAutomationRuleParams represents parameters for creating an automation rule
type CreateAutomationRuleParams struct {
	OrganizationID       uuid.UUID
	Name                 string
	Description          *string
	TriggerType          string
	TriggerConfig        RawJSON
	Conditions           RuleConditions
	ConditionLogic       string
	EmailTemplateID      uuid.UUID
	SendDelayMinutes     int
	MaxSendsPerContact   *int
	CooldownPeriodDays   *int
	EnforceBusinessHours bool
	IsActive             bool
	Priority             int
	ABTestEnabled        bool
}

const sqlCreateAutomationRule = `
INSERT INTO automation_rules (organization_id, name, description, trigger_type, trigger_config, conditions, condition_logic,
    email_template_id, send_delay_minutes, max_sends_per_contact, cooldown_period_days, enforce_business_hours,
    is_active, priority, ab_test_enabled)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + ruleColumns

// CreateAutomationRule creates a new automation rule
func (s *Store) CreateAutomationRule(ctx context.Context, params CreateAutomationRuleParams) (AutomationRule, error) {
	var rule AutomationRule
	err := s.db.GetContext(ctx, &rule, sqlCreateAutomationRule,
		params.OrganizationID,
		params.Name,
		params.Description,
		params.TriggerType,
		params.TriggerConfig,
		params.Conditions,
		params.ConditionLogic,
		params.EmailTemplateID,
		params.SendDelayMinutes,
		params.MaxSendsPerContact,
		params.CooldownPeriodDays,
		params.EnforceBusinessHours,
		params.IsActive,
		params.Priority,
		params.ABTestEnabled)
	if err != nil {
		return AutomationRule{}, fmt.Errorf("failed to create automation rule: %w", err)
	}
	return rule, nil
}

const sqlGetAutomationRuleByID = `
SELECT ` + ruleColumns + `
FROM automation_rules
WHERE id = $1 AND organization_id = $2
`

// GetAutomationRuleByID retrieves a rule scoped to its organization
func (s *Store) GetAutomationRuleByID(ctx context.Context, orgID, ruleID uuid.UUID) (AutomationRule, error) {
	var rule AutomationRule
	err := s.db.GetContext(ctx, &rule, sqlGetAutomationRuleByID, ruleID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AutomationRule{}, ErrNotFound
		}
		return AutomationRule{}, fmt.Errorf("failed to get automation rule: %w", err)
	}
	return rule, nil
}

const sqlGetActiveRulesByTrigger = `
SELECT ` + ruleColumns + `
FROM automation_rules
WHERE organization_id = $1 AND trigger_type = $2 AND is_active = TRUE
ORDER BY priority DESC, created_at ASC, id ASC
`

// GetActiveRulesByTrigger returns the org's active rules for a trigger type, highest priority first
func (s *Store) GetActiveRulesByTrigger(ctx context.Context, orgID uuid.UUID, triggerType string) ([]AutomationRule, error) {
	var rules []AutomationRule
	err := s.db.SelectContext(ctx, &rules, sqlGetActiveRulesByTrigger, orgID, triggerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get active automation rules: %w", err)
	}
	return rules, nil
}

const sqlGetActiveRulesByTriggerAllOrgs = `
SELECT ` + ruleColumns + `
FROM automation_rules
WHERE trigger_type = $1 AND is_active = TRUE
ORDER BY organization_id, priority DESC, created_at ASC
`

// GetActiveRulesByTriggerAllOrgs is used by the periodic scans
func (s *Store) GetActiveRulesByTriggerAllOrgs(ctx context.Context, triggerType string) ([]AutomationRule, error) {
	var rules []AutomationRule
	err := s.db.SelectContext(ctx, &rules, sqlGetActiveRulesByTriggerAllOrgs, triggerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get active automation rules: %w", err)
	}
	return rules, nil
}

const sqlGetAutomationRulesByIDs = `
SELECT ` + ruleColumns + `
FROM automation_rules
WHERE id = ANY($1::uuid[])
`

// GetAutomationRulesByIDs loads rules in bulk, keyed by id
func (s *Store) GetAutomationRulesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]AutomationRule, error) {
	result := make(map[uuid.UUID]AutomationRule, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rules []AutomationRule
	if err := s.db.SelectContext(ctx, &rules, sqlGetAutomationRulesByIDs, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("failed to get automation rules: %w", err)
	}
	for _, r := range rules {
		result[r.ID] = r
	}
	return result, nil
}

// ListAutomationRulesParams filters the rule listing
type ListAutomationRulesParams struct {
	OrganizationID uuid.UUID
	TriggerType    *string
	IsActive       *bool
}

const sqlListAutomationRules = `
SELECT ` + ruleColumns + `
FROM automation_rules
WHERE organization_id = $1
  AND ($2::text IS NULL OR trigger_type = $2)
  AND ($3::boolean IS NULL OR is_active = $3)
ORDER BY priority DESC, created_at ASC
`

// ListAutomationRules lists an organization's rules
func (s *Store) ListAutomationRules(ctx context.Context, params ListAutomationRulesParams) ([]AutomationRule, error) {
	rules := []AutomationRule{}
	err := s.db.SelectContext(ctx, &rules, sqlListAutomationRules, params.OrganizationID, params.TriggerType, params.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation rules: %w", err)
	}
	return rules, nil
}

// UpdateAutomationRuleParams represents a partial rule update
type UpdateAutomationRuleParams struct {
	Name                 *string
	Description          *string
	TriggerConfig        RawJSON
	Conditions           RuleConditions
	ConditionLogic       *string
	EmailTemplateID      *uuid.UUID
	SendDelayMinutes     *int
	MaxSendsPerContact   *int
	CooldownPeriodDays   *int
	EnforceBusinessHours *bool
	IsActive             *bool
	Priority             *int
	ABTestEnabled        *bool
}

const sqlUpdateAutomationRule = `
UPDATE automation_rules
SET name = COALESCE($3, name),
    description = COALESCE($4, description),
    trigger_config = COALESCE($5, trigger_config),
    conditions = COALESCE($6, conditions),
    condition_logic = COALESCE($7, condition_logic),
    email_template_id = COALESCE($8, email_template_id),
    send_delay_minutes = COALESCE($9, send_delay_minutes),
    max_sends_per_contact = COALESCE($10, max_sends_per_contact),
    cooldown_period_days = COALESCE($11, cooldown_period_days),
    enforce_business_hours = COALESCE($12, enforce_business_hours),
    is_active = COALESCE($13, is_active),
    priority = COALESCE($14, priority),
    ab_test_enabled = COALESCE($15, ab_test_enabled),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND organization_id = $2
RETURNING ` + ruleColumns

// UpdateAutomationRule applies the non-nil fields of params
func (s *Store) UpdateAutomationRule(ctx context.Context, orgID, ruleID uuid.UUID, params UpdateAutomationRuleParams) (AutomationRule, error) {
	var triggerConfig, conditions interface{}
	if params.TriggerConfig != nil {
		triggerConfig = params.TriggerConfig
	}
	if params.Conditions != nil {
		conditions = params.Conditions
	}

	var rule AutomationRule
	err := s.db.GetContext(ctx, &rule, sqlUpdateAutomationRule,
		ruleID,
		orgID,
		params.Name,
		params.Description,
		triggerConfig,
		conditions,
		params.ConditionLogic,
		params.EmailTemplateID,
		params.SendDelayMinutes,
		params.MaxSendsPerContact,
		params.CooldownPeriodDays,
		params.EnforceBusinessHours,
		params.IsActive,
		params.Priority,
		params.ABTestEnabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AutomationRule{}, ErrNotFound
		}
		return AutomationRule{}, fmt.Errorf("failed to update automation rule: %w", err)
	}
	return rule, nil
}

const sqlDeleteAutomationRule = `
DELETE FROM automation_rules
WHERE id = $1 AND organization_id = $2
`

// DeleteAutomationRule removes a rule
func (s *Store) DeleteAutomationRule(ctx context.Context, orgID, ruleID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteAutomationRule, ruleID, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete automation rule: %w", err)
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

const (
	sqlIncrementRuleTriggered = `UPDATE automation_rules SET total_triggered = total_triggered + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	sqlIncrementRuleSent      = `UPDATE automation_rules SET total_sent = total_sent + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	sqlIncrementRuleFailed    = `UPDATE automation_rules SET total_failed = total_failed + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
)

// IncrementRuleStat bumps one of the rule's running counters in place
func (s *Store) IncrementRuleStat(ctx context.Context, ruleID uuid.UUID, stat RuleStat) error {
	var query string
	switch stat {
	case RuleStatTriggered:
		query = sqlIncrementRuleTriggered
	case RuleStatSent:
		query = sqlIncrementRuleSent
	case RuleStatFailed:
		query = sqlIncrementRuleFailed
	default:
		return fmt.Errorf("unknown rule stat %q", stat)
	}

	res, err := s.db.ExecContext(ctx, query, ruleID)
	if err != nil {
		return fmt.Errorf("failed to increment rule %s counter: %w", stat, err)
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
