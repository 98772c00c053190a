package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"crm-automation/internal/automation/conditions"
	"crm-automation/internal/automation/triggers"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

const (
	defaultExecutionPageSize = 50
	maxExecutionPageSize     = 200
)

// CreateRuleRequest represents a request to create an automation rule
type CreateRuleRequest struct {
	Name                 string
	Description          *string
	TriggerType          string
	TriggerConfig        json.RawMessage
	Conditions           []store.RuleCondition
	ConditionLogic       string
	EmailTemplateID      uuid.UUID
	SendDelayMinutes     int
	MaxSendsPerContact   *int
	CooldownPeriodDays   *int
	EnforceBusinessHours bool
	IsActive             *bool
	Priority             int
	ABTestEnabled        bool
}

// UpdateRuleRequest is a partial update; nil fields are left unchanged
type UpdateRuleRequest struct {
	Name                 *string
	Description          *string
	TriggerConfig        json.RawMessage
	Conditions           *[]store.RuleCondition
	ConditionLogic       *string
	EmailTemplateID      *uuid.UUID
	SendDelayMinutes     *int
	MaxSendsPerContact   *int
	CooldownPeriodDays   *int
	EnforceBusinessHours *bool
	Priority             *int
	ABTestEnabled        *bool
}

// ListRules lists an organization's rules, highest priority first
func (p *AutomationProcessor) ListRules(ctx context.Context, orgID uuid.UUID, triggerType *string, isActive *bool) ([]store.AutomationRule, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "organization_id", Value: orgID})

	if triggerType != nil && !triggers.IsKnown(*triggerType) {
		return nil, ErrInvalidTriggerType
	}

	rules, err := p.store.ListAutomationRules(ctx, store.ListAutomationRulesParams{
		OrganizationID: orgID,
		TriggerType:    triggerType,
		IsActive:       isActive,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list automation rules", err)
		return nil, err
	}
	return rules, nil
}

// GetRule retrieves one rule
func (p *AutomationProcessor) GetRule(ctx context.Context, orgID, ruleID uuid.UUID) (store.AutomationRule, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "rule_id", Value: ruleID},
	)
	return p.getRule(ctx, orgID, ruleID)
}

// CreateRule validates and stores a new rule. Rules are active unless IsActive says otherwise.
func (p *AutomationProcessor) CreateRule(ctx context.Context, orgID uuid.UUID, req CreateRuleRequest) (store.AutomationRule, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "trigger_type", Value: req.TriggerType},
	)

	if strings.TrimSpace(req.Name) == "" {
		return store.AutomationRule{}, fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	triggerConfig, err := normalizeTriggerConfig(req.TriggerType, req.TriggerConfig)
	if err != nil {
		return store.AutomationRule{}, err
	}
	if err := validateConditions(req.Conditions); err != nil {
		return store.AutomationRule{}, err
	}
	logic, err := normalizeLogic(req.ConditionLogic)
	if err != nil {
		return store.AutomationRule{}, err
	}
	if err := validateTiming(&req.SendDelayMinutes, req.MaxSendsPerContact, req.CooldownPeriodDays); err != nil {
		return store.AutomationRule{}, err
	}
	if _, err := p.getTemplate(ctx, orgID, req.EmailTemplateID); err != nil {
		return store.AutomationRule{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule, err := p.store.CreateAutomationRule(ctx, store.CreateAutomationRuleParams{
		OrganizationID:       orgID,
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		TriggerType:          req.TriggerType,
		TriggerConfig:        triggerConfig,
		Conditions:           store.RuleConditions(req.Conditions),
		ConditionLogic:       logic,
		EmailTemplateID:      req.EmailTemplateID,
		SendDelayMinutes:     req.SendDelayMinutes,
		MaxSendsPerContact:   req.MaxSendsPerContact,
		CooldownPeriodDays:   req.CooldownPeriodDays,
		EnforceBusinessHours: req.EnforceBusinessHours,
		IsActive:             isActive,
		Priority:             req.Priority,
		ABTestEnabled:        req.ABTestEnabled,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create automation rule", err)
		return store.AutomationRule{}, err
	}

	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "rule_id", Value: rule.ID}), "automation rule created")
	return rule, nil
}

// UpdateRule applies a partial update. A new trigger config is validated against the rule's trigger type.
func (p *AutomationProcessor) UpdateRule(ctx context.Context, orgID, ruleID uuid.UUID, req UpdateRuleRequest) (store.AutomationRule, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "rule_id", Value: ruleID},
	)

	existing, err := p.getRule(ctx, orgID, ruleID)
	if err != nil {
		return store.AutomationRule{}, err
	}

	params := store.UpdateAutomationRuleParams{
		Description:          req.Description,
		EmailTemplateID:      req.EmailTemplateID,
		SendDelayMinutes:     req.SendDelayMinutes,
		MaxSendsPerContact:   req.MaxSendsPerContact,
		CooldownPeriodDays:   req.CooldownPeriodDays,
		EnforceBusinessHours: req.EnforceBusinessHours,
		Priority:             req.Priority,
		ABTestEnabled:        req.ABTestEnabled,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return store.AutomationRule{}, fmt.Errorf("%w: name is required", ErrInvalidRule)
		}
		params.Name = &name
	}
	if req.TriggerConfig != nil {
		if params.TriggerConfig, err = normalizeTriggerConfig(existing.TriggerType, req.TriggerConfig); err != nil {
			return store.AutomationRule{}, err
		}
	}
	if req.Conditions != nil {
		if err := validateConditions(*req.Conditions); err != nil {
			return store.AutomationRule{}, err
		}
		params.Conditions = append(store.RuleConditions{}, *req.Conditions...)
	}
	if req.ConditionLogic != nil {
		logic, err := normalizeLogic(*req.ConditionLogic)
		if err != nil {
			return store.AutomationRule{}, err
		}
		params.ConditionLogic = &logic
	}
	if err := validateTiming(req.SendDelayMinutes, req.MaxSendsPerContact, req.CooldownPeriodDays); err != nil {
		return store.AutomationRule{}, err
	}
	if req.EmailTemplateID != nil {
		if _, err := p.getTemplate(ctx, orgID, *req.EmailTemplateID); err != nil {
			return store.AutomationRule{}, err
		}
	}

	rule, err := p.store.UpdateAutomationRule(ctx, orgID, ruleID, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AutomationRule{}, ErrRuleNotFound
		}
		p.logger.Error(ctx, "failed to update automation rule", err)
		return store.AutomationRule{}, err
	}

	p.logger.Info(ctx, "automation rule updated")
	return rule, nil
}

// SetRuleActive activates or deactivates a rule. Executions of a deactivated rule
// still in the queue fail when the dispatch worker reaches them.
func (p *AutomationProcessor) SetRuleActive(ctx context.Context, orgID, ruleID uuid.UUID, active bool) (store.AutomationRule, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "rule_id", Value: ruleID},
	)

	rule, err := p.store.UpdateAutomationRule(ctx, orgID, ruleID, store.UpdateAutomationRuleParams{IsActive: &active})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AutomationRule{}, ErrRuleNotFound
		}
		p.logger.Error(ctx, "failed to change automation rule state", err)
		return store.AutomationRule{}, err
	}

	p.logger.Info(ctx, fmt.Sprintf("automation rule active=%t", active))
	return rule, nil
}

// DeleteRule removes a rule
func (p *AutomationProcessor) DeleteRule(ctx context.Context, orgID, ruleID uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "rule_id", Value: ruleID},
	)

	if err := p.store.DeleteAutomationRule(ctx, orgID, ruleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRuleNotFound
		}
		p.logger.Error(ctx, "failed to delete automation rule", err)
		return err
	}

	p.logger.Info(ctx, "automation rule deleted")
	return nil
}

// ListExecutions pages through a rule's executions, newest first
func (p *AutomationProcessor) ListExecutions(ctx context.Context, orgID, ruleID uuid.UUID, status *string, limit, offset int) ([]store.AutomationExecution, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "rule_id", Value: ruleID},
	)

	if status != nil && !isExecutionStatus(*status) {
		return nil, fmt.Errorf("%w: unknown execution status %q", ErrInvalidRule, *status)
	}
	if _, err := p.getRule(ctx, orgID, ruleID); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultExecutionPageSize
	case limit > maxExecutionPageSize:
		limit = maxExecutionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	executions, err := p.store.ListExecutionsByRule(ctx, store.ListExecutionsByRuleParams{
		OrganizationID: orgID,
		RuleID:         ruleID,
		Status:         status,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list automation executions", err)
		return nil, err
	}
	return executions, nil
}

// GetExecution retrieves one execution of the organization
func (p *AutomationProcessor) GetExecution(ctx context.Context, orgID, executionID uuid.UUID) (store.AutomationExecution, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "execution_id", Value: executionID},
	)

	execution, err := p.store.GetAutomationExecutionByID(ctx, executionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AutomationExecution{}, ErrExecutionNotFound
		}
		p.logger.Error(ctx, "failed to get automation execution", err)
		return store.AutomationExecution{}, err
	}
	if execution.OrganizationID != orgID {
		return store.AutomationExecution{}, ErrExecutionNotFound
	}
	return execution, nil
}

// normalizeTriggerConfig parses raw into the trigger's config variant, validates it and
// re-encodes it so only known keys are stored.
func normalizeTriggerConfig(triggerType string, raw json.RawMessage) (store.RawJSON, error) {
	if !triggers.IsKnown(triggerType) {
		return nil, ErrInvalidTriggerType
	}
	cfg, err := triggers.Parse(triggerType, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTriggerConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTriggerConfig, err)
	}
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trigger config: %w", err)
	}
	return store.RawJSON(encoded), nil
}

func validateConditions(conds []store.RuleCondition) error {
	if err := conditions.Validate(conds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConditions, err)
	}
	return nil
}

func normalizeLogic(logic string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(logic)) {
	case "", store.ConditionLogicAnd:
		return store.ConditionLogicAnd, nil
	case store.ConditionLogicOr:
		return store.ConditionLogicOr, nil
	}
	return "", ErrInvalidConditionLogic
}

func validateTiming(sendDelay, maxSends, cooldownDays *int) error {
	if sendDelay != nil && *sendDelay < 0 {
		return fmt.Errorf("%w: send delay must not be negative", ErrInvalidRule)
	}
	if maxSends != nil && *maxSends <= 0 {
		return fmt.Errorf("%w: max sends per contact must be positive", ErrInvalidRule)
	}
	if cooldownDays != nil && *cooldownDays < 0 {
		return fmt.Errorf("%w: cooldown period must not be negative", ErrInvalidRule)
	}
	return nil
}

func isExecutionStatus(status string) bool {
	switch status {
	case store.ExecutionStatusPending, store.ExecutionStatusScheduled, store.ExecutionStatusSent, store.ExecutionStatusFailed:
		return true
	}
	return false
}
