package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=handler

import (
	"context"

	"crm-automation/internal/automation/processor"
	"crm-automation/internal/automation/tracking"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// AutomationProcessor is the engine surface served over HTTP
type AutomationProcessor interface {
	HandleEvent(ctx context.Context, orgID uuid.UUID, triggerType string, contactID uuid.UUID, triggerData map[string]interface{}) (processor.EventResult, error)
	TestRule(ctx context.Context, orgID, ruleID, contactID uuid.UUID, mode string, triggerData map[string]interface{}) (processor.TestResult, error)
	ListRules(ctx context.Context, orgID uuid.UUID, triggerType *string, isActive *bool) ([]store.AutomationRule, error)
	GetRule(ctx context.Context, orgID, ruleID uuid.UUID) (store.AutomationRule, error)
	CreateRule(ctx context.Context, orgID uuid.UUID, req processor.CreateRuleRequest) (store.AutomationRule, error)
	UpdateRule(ctx context.Context, orgID, ruleID uuid.UUID, req processor.UpdateRuleRequest) (store.AutomationRule, error)
	SetRuleActive(ctx context.Context, orgID, ruleID uuid.UUID, active bool) (store.AutomationRule, error)
	DeleteRule(ctx context.Context, orgID, ruleID uuid.UUID) error
	ListExecutions(ctx context.Context, orgID, ruleID uuid.UUID, status *string, limit, offset int) ([]store.AutomationExecution, error)
	GetExecution(ctx context.Context, orgID, executionID uuid.UUID) (store.AutomationExecution, error)
	RecordOpen(ctx context.Context, executionID uuid.UUID, client processor.ClientInfo) error
	RecordClick(ctx context.Context, executionID uuid.UUID, target, linkType, signature string, client processor.ClientInfo) error
	Unsubscribe(ctx context.Context, token, source string) (tracking.UnsubscribeClaims, error)
}
