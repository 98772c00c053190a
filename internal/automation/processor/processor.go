package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-automation/internal/automation/dispatch"
	"crm-automation/internal/automation/templating"
	"crm-automation/internal/automation/triggers"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

var (
	ErrContactNotFound       = errors.New("contact not found")
	ErrRuleNotFound          = errors.New("automation rule not found")
	ErrTemplateNotFound      = errors.New("email template not found")
	ErrExecutionNotFound     = errors.New("automation execution not found")
	ErrInvalidTriggerType    = errors.New("invalid trigger type")
	ErrInvalidTriggerConfig  = errors.New("invalid trigger config")
	ErrInvalidConditions     = errors.New("invalid conditions")
	ErrInvalidConditionLogic = errors.New("condition logic must be AND or OR")
	ErrInvalidRule           = errors.New("invalid automation rule")
	ErrInvalidTestMode       = errors.New("test mode must be preview or send")
	ErrNoEmail               = errors.New("contact has no email address")
	ErrInvalidSignature      = errors.New("invalid click signature")
	ErrInvalidToken          = errors.New("invalid unsubscribe token")
)

// Test modes
const (
	ModePreview = "preview"
	ModeSend    = "send"
)

// Components are the engine stages an event flows through
type Components struct {
	Cooldown     CooldownGovernor
	Conditions   ConditionEvaluator
	Scheduler    ExecutionScheduler
	Dispatcher   Dispatcher
	Personalizer Personalizer
	Tracker      Tracker
	// Publisher is optional; without it engagement is recorded but not re-emitted
	Publisher EngagementPublisher
}

type AutomationProcessor struct {
	store      AutomationStore
	components Components
	logger     *observability.Logger
	now        func() time.Time
}

func New(store AutomationStore, components Components, logger *observability.Logger) AutomationProcessor {
	return AutomationProcessor{
		store:      store,
		components: components,
		logger:     logger,
		now:        time.Now,
	}
}

// EventResult reports what one CRM event produced
type EventResult struct {
	ExecutionIDs   []uuid.UUID `json:"execution_ids"`
	RulesEvaluated int         `json:"rules_evaluated"`
	RulesMatched   int         `json:"rules_matched"`
}

// HandleEvent runs a CRM event through trigger matching, cooldowns and conditions, and
// schedules an execution for every rule that passes. A failure on one rule is logged
// and does not stop the others.
func (p *AutomationProcessor) HandleEvent(ctx context.Context, orgID uuid.UUID, triggerType string, contactID uuid.UUID, triggerData map[string]interface{}) (EventResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "contact_id", Value: contactID},
		observability.Field{Key: "trigger_type", Value: triggerType},
	)

	if !triggers.IsKnown(triggerType) {
		return EventResult{}, ErrInvalidTriggerType
	}
	if triggerData == nil {
		triggerData = map[string]interface{}{}
	}

	contact, err := p.store.GetContactByID(ctx, orgID, contactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return EventResult{}, ErrContactNotFound
		}
		p.logger.Error(ctx, "failed to get contact", err)
		return EventResult{}, fmt.Errorf("failed to get contact: %w", err)
	}

	rules, err := p.store.GetActiveRulesByTrigger(ctx, orgID, triggerType)
	if err != nil {
		p.logger.Error(ctx, "failed to get active rules", err)
		return EventResult{}, fmt.Errorf("failed to get active rules: %w", err)
	}

	result := EventResult{ExecutionIDs: []uuid.UUID{}, RulesEvaluated: len(rules)}
	var loc *time.Location

	for _, rule := range rules {
		ruleCtx := observability.WithFields(ctx, observability.Field{Key: "rule_id", Value: rule.ID})

		if !triggers.Matches(rule.TriggerType, rule.TriggerConfig, triggerData) {
			continue
		}

		allowed, err := p.components.Cooldown.CanSend(ruleCtx, rule, contact.ID)
		if err != nil {
			p.logger.Error(ruleCtx, "failed to check cooldown, skipping rule", err)
			continue
		}
		if !allowed {
			continue
		}

		if len(rule.Conditions) > 0 {
			if loc == nil {
				loc = p.orgLocation(ctx, orgID)
			}
			if !p.components.Conditions.Evaluate(ruleCtx, rule.Conditions, rule.ConditionLogic, contact, loc) {
				p.logger.Debug(ruleCtx, "rule conditions not met")
				continue
			}
		}

		result.RulesMatched++
		scheduled, err := p.components.Scheduler.Schedule(ruleCtx, rule, contact, triggerType, triggerData)
		if err != nil {
			p.logger.Error(ruleCtx, "failed to schedule automation", err)
			continue
		}
		if scheduled.Execution != nil {
			result.ExecutionIDs = append(result.ExecutionIDs, scheduled.Execution.ID)
		}
	}

	p.logger.Info(ctx, fmt.Sprintf("evaluated %d rules, %d matched, %d executions created",
		result.RulesEvaluated, result.RulesMatched, len(result.ExecutionIDs)))
	return result, nil
}

// orgLocation is the timezone time conditions are evaluated in. Unknown orgs use UTC.
func (p *AutomationProcessor) orgLocation(ctx context.Context, orgID uuid.UUID) *time.Location {
	row, err := p.store.GetOrgSettings(ctx, orgID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Error(ctx, "failed to get org settings, evaluating conditions in UTC", err)
		}
		return time.UTC
	}
	return dispatch.ResolveSettings(row).Location
}

// TestResult is the outcome of a rule test
type TestResult struct {
	Mode        string           `json:"mode"`
	Subject     string           `json:"subject,omitempty"`
	HTML        string           `json:"html,omitempty"`
	ExecutionID *uuid.UUID       `json:"execution_id,omitempty"`
	Outcome     dispatch.Outcome `json:"outcome,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// TestRule bypasses matching for one rule and contact. Preview resolves the rule's
// template without sending; send performs one real send through a throwaway execution.
func (p *AutomationProcessor) TestRule(ctx context.Context, orgID, ruleID, contactID uuid.UUID, mode string, triggerData map[string]interface{}) (TestResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID},
		observability.Field{Key: "rule_id", Value: ruleID},
		observability.Field{Key: "contact_id", Value: contactID},
		observability.Field{Key: "test_mode", Value: mode},
	)

	if mode != ModePreview && mode != ModeSend {
		return TestResult{}, ErrInvalidTestMode
	}
	if triggerData == nil {
		triggerData = map[string]interface{}{}
	}

	rule, err := p.getRule(ctx, orgID, ruleID)
	if err != nil {
		return TestResult{}, err
	}

	contact, err := p.store.GetContactByID(ctx, orgID, contactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TestResult{}, ErrContactNotFound
		}
		p.logger.Error(ctx, "failed to get contact", err)
		return TestResult{}, fmt.Errorf("failed to get contact: %w", err)
	}

	if mode == ModePreview {
		tmpl, err := p.getTemplate(ctx, orgID, rule.EmailTemplateID)
		if err != nil {
			return TestResult{}, err
		}
		subject, body := p.components.Personalizer.ResolveEmail(ctx, templating.Input{
			Contact:     contact,
			TriggerData: triggerData,
		}, tmpl.Subject, tmpl.HTMLBody)
		return TestResult{Mode: mode, Subject: subject, HTML: body}, nil
	}

	if strings.TrimSpace(contact.Email) == "" {
		return TestResult{}, ErrNoEmail
	}

	execution, err := p.store.CreateAutomationExecution(ctx, store.CreateAutomationExecutionParams{
		OrganizationID: orgID,
		RuleID:         rule.ID,
		ContactID:      contact.ID,
		TriggerType:    store.TriggerTypeTest,
		TriggerData:    store.JSONB(triggerData),
		Status:         store.ExecutionStatusPending,
		ScheduledFor:   p.now(),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create test execution", err)
		return TestResult{}, fmt.Errorf("failed to create test execution: %w", err)
	}

	result := TestResult{
		Mode:        mode,
		ExecutionID: &execution.ID,
		Outcome:     p.components.Dispatcher.ProcessExecution(ctx, execution),
	}

	// report the stored outcome so callers see the subject or the failure reason
	if settled, err := p.store.GetAutomationExecutionByID(ctx, execution.ID); err == nil {
		if settled.EmailSubject != nil {
			result.Subject = *settled.EmailSubject
		}
		if settled.ErrorMessage != nil {
			result.Error = *settled.ErrorMessage
		}
	}

	p.logger.Info(ctx, fmt.Sprintf("test send finished with outcome %s", result.Outcome))
	return result, nil
}

func (p *AutomationProcessor) getRule(ctx context.Context, orgID, ruleID uuid.UUID) (store.AutomationRule, error) {
	rule, err := p.store.GetAutomationRuleByID(ctx, orgID, ruleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AutomationRule{}, ErrRuleNotFound
		}
		p.logger.Error(ctx, "failed to get automation rule", err)
		return store.AutomationRule{}, fmt.Errorf("failed to get automation rule: %w", err)
	}
	return rule, nil
}

func (p *AutomationProcessor) getTemplate(ctx context.Context, orgID, templateID uuid.UUID) (store.EmailTemplate, error) {
	tmpl, err := p.store.GetEmailTemplateByID(ctx, orgID, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.EmailTemplate{}, ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to get email template", err)
		return store.EmailTemplate{}, fmt.Errorf("failed to get email template: %w", err)
	}
	return tmpl, nil
}
