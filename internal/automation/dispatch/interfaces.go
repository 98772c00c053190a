package dispatch

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=dispatch

import (
	"context"
	"time"

	"crm-automation/internal/automation/templating"
	"crm-automation/internal/automation/tracking"
	"crm-automation/internal/email"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// Store defines the database operations required by the dispatch Worker
type Store interface {
	GetDueExecutions(ctx context.Context, now time.Time, limit int) ([]store.AutomationExecution, error)
	GetAutomationRulesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]store.AutomationRule, error)
	GetEmailTemplatesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]store.EmailTemplate, error)
	GetABVariantsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]store.ABVariant, error)
	GetOrgSettingsByIDs(ctx context.Context, orgIDs []uuid.UUID) (map[uuid.UUID]store.OrgSettings, error)
	GetContactsTemplateData(ctx context.Context, contactIDs []uuid.UUID) (map[uuid.UUID]store.ContactTemplateData, error)

	TryIncrementDailySend(ctx context.Context, orgID, contactID uuid.UUID, sendDate string, limit int) (bool, error)
	ReleaseDailySend(ctx context.Context, orgID, contactID uuid.UUID, sendDate string) error
	IsUnsubscribed(ctx context.Context, orgID uuid.UUID, email string) (bool, error)
	IsSuppressed(ctx context.Context, orgID uuid.UUID, email string) (bool, error)

	ClaimExecution(ctx context.Context, executionID uuid.UUID, fromStatus string) (bool, error)
	MarkExecutionSent(ctx context.Context, executionID uuid.UUID, sentAt time.Time, subject string) error
	ScheduleExecutionRetry(ctx context.Context, executionID uuid.UUID, retryCount int, nextRetryAt time.Time, errorMessage string) error
	MarkExecutionFailed(ctx context.Context, executionID uuid.UUID, fromStatus, errorMessage string) error
	RescheduleExecution(ctx context.Context, executionID uuid.UUID, fromStatus string, at time.Time) error

	IncrementRuleStat(ctx context.Context, ruleID uuid.UUID, stat store.RuleStat) error
	IncrementCooldown(ctx context.Context, ruleID, contactID uuid.UUID, sentAt time.Time) (store.Cooldown, error)
}

// Sender is the delivery channel
type Sender interface {
	Send(ctx context.Context, msg email.Message) error
}

// Personalizer resolves template tokens
type Personalizer interface {
	ResolveEmail(ctx context.Context, in templating.Input, subject, htmlBody string) (string, string)
}

// Instrumenter adds open, click and unsubscribe tracking to a rendered body
type Instrumenter interface {
	Instrument(body string, r tracking.Recipient) (tracking.Instrumented, error)
}

// Locker guards a sweep across worker replicas
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
