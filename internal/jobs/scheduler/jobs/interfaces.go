package jobs

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=jobs

import (
	"context"
	"time"

	"crm-automation/internal/automation/dispatch"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// Dispatcher sends due scheduled executions
type Dispatcher interface {
	ProcessDue(ctx context.Context) (dispatch.Summary, error)
}

// ClaimStore returns abandoned claims to the schedule
type ClaimStore interface {
	RequeueStaleClaims(ctx context.Context, cutoff time.Time) (int64, error)
}

// ScanStore selects candidate contacts for the time driven triggers
type ScanStore interface {
	GetActiveRulesByTriggerAllOrgs(ctx context.Context, triggerType string) ([]store.AutomationRule, error)
	ListInactiveContacts(ctx context.Context, orgID uuid.UUID, cutoff time.Time, ruleID uuid.UUID, limit int) ([]store.Contact, error)
	ListContactsByDateField(ctx context.Context, orgID, ruleID uuid.UUID, dateField string, offsetDays int, day string, limit int) ([]store.Contact, error)
}

// TriggerPublisher emits trigger events into the automation pipeline
type TriggerPublisher interface {
	PublishTrigger(ctx context.Context, orgID, contactID uuid.UUID, triggerType string, triggerData map[string]interface{}) error
}
