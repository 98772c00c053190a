package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"time"

	"crm-automation/internal/automation/dispatch"
	"crm-automation/internal/automation/scheduler"
	"crm-automation/internal/automation/templating"
	"crm-automation/internal/automation/tracking"
	"crm-automation/internal/events"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// AutomationStore defines the database operations required by AutomationProcessor
type AutomationStore interface {
	GetContactByID(ctx context.Context, orgID, contactID uuid.UUID) (store.Contact, error)
	GetOrgSettings(ctx context.Context, orgID uuid.UUID) (store.OrgSettings, error)
	GetActiveRulesByTrigger(ctx context.Context, orgID uuid.UUID, triggerType string) ([]store.AutomationRule, error)
	GetAutomationRuleByID(ctx context.Context, orgID, ruleID uuid.UUID) (store.AutomationRule, error)
	ListAutomationRules(ctx context.Context, params store.ListAutomationRulesParams) ([]store.AutomationRule, error)
	CreateAutomationRule(ctx context.Context, params store.CreateAutomationRuleParams) (store.AutomationRule, error)
	UpdateAutomationRule(ctx context.Context, orgID, ruleID uuid.UUID, params store.UpdateAutomationRuleParams) (store.AutomationRule, error)
	DeleteAutomationRule(ctx context.Context, orgID, ruleID uuid.UUID) error
	GetEmailTemplateByID(ctx context.Context, orgID, templateID uuid.UUID) (store.EmailTemplate, error)
	GetAutomationExecutionByID(ctx context.Context, executionID uuid.UUID) (store.AutomationExecution, error)
	ListExecutionsByRule(ctx context.Context, params store.ListExecutionsByRuleParams) ([]store.AutomationExecution, error)
	CreateAutomationExecution(ctx context.Context, params store.CreateAutomationExecutionParams) (store.AutomationExecution, error)
	CreateEmailEvent(ctx context.Context, params store.CreateEmailEventParams) (store.EmailEvent, error)
	CreateUnsubscribe(ctx context.Context, params store.CreateUnsubscribeParams) error
}

// CooldownGovernor filters rules that already reached a contact too often
type CooldownGovernor interface {
	CanSend(ctx context.Context, rule store.AutomationRule, contactID uuid.UUID) (bool, error)
}

// ConditionEvaluator evaluates a rule's conditions against a contact
type ConditionEvaluator interface {
	Evaluate(ctx context.Context, conds []store.RuleCondition, logic string, contact store.Contact, loc *time.Location) bool
}

// ExecutionScheduler creates executions for matched rules
type ExecutionScheduler interface {
	Schedule(ctx context.Context, rule store.AutomationRule, contact store.Contact, triggerType string, triggerData map[string]interface{}) (scheduler.Result, error)
}

// Dispatcher sends one execution right away
type Dispatcher interface {
	ProcessExecution(ctx context.Context, execution store.AutomationExecution) dispatch.Outcome
}

// Personalizer resolves template tokens for previews
type Personalizer interface {
	ResolveEmail(ctx context.Context, in templating.Input, subject, htmlBody string) (string, string)
}

// Tracker verifies signed click and unsubscribe links
type Tracker interface {
	VerifyClick(executionID uuid.UUID, target, signature string) error
	ParseUnsubscribeToken(token string) (tracking.UnsubscribeClaims, error)
}

// EngagementPublisher re-emits opens and clicks as CRM events
type EngagementPublisher interface {
	PublishEngagement(ctx context.Context, e events.Engagement) error
}
