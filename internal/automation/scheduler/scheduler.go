package scheduler

//go:generate go run go.uber.org/mock/mockgen@latest -source=scheduler.go -destination=mocks_test.go -package=scheduler

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"crm-automation/internal/automation/dispatch"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

var ErrNoEmail = errors.New("contact has no email address")

// Store defines the database operations required by the Scheduler
type Store interface {
	GetActiveABTest(ctx context.Context, ruleID uuid.UUID) (store.ABTest, error)
	GetOrgSettings(ctx context.Context, orgID uuid.UUID) (store.OrgSettings, error)
	GetDailySendCount(ctx context.Context, orgID, contactID uuid.UUID, sendDate string) (int, error)
	CreateAutomationExecution(ctx context.Context, params store.CreateAutomationExecutionParams) (store.AutomationExecution, error)
	IncrementRuleStat(ctx context.Context, ruleID uuid.UUID, stat store.RuleStat) error
}

// Dispatcher runs an execution immediately
type Dispatcher interface {
	ProcessExecution(ctx context.Context, execution store.AutomationExecution) dispatch.Outcome
}

// Skip reasons
const (
	SkipNoEmail    = "no_email"
	SkipDailyLimit = "daily_limit_reached"
)

// Result reports what Schedule did for one (rule, contact) match.
type Result struct {
	Execution  *store.AutomationExecution
	SkipReason string
	// Outcome is set when the execution was dispatched inline
	Outcome dispatch.Outcome
}

type Config struct {
	DefaultMaxRetries int
	DefaultDailyLimit int
}

type Scheduler struct {
	store      Store
	dispatcher Dispatcher
	logger     *observability.Logger
	cfg        Config
	now        func() time.Time
	draw       func() float64
}

func New(store Store, dispatcher Dispatcher, cfg Config, logger *observability.Logger) *Scheduler {
	if cfg.DefaultMaxRetries <= 0 {
		cfg.DefaultMaxRetries = 3
	}
	return &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
		draw:       rand.Float64,
	}
}

// Schedule creates the execution for a matched rule and, for rules without delay,
// dispatches it before returning.
func (s *Scheduler) Schedule(ctx context.Context, rule store.AutomationRule, contact store.Contact, triggerType string, triggerData map[string]interface{}) (Result, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: rule.OrganizationID},
		observability.Field{Key: "rule_id", Value: rule.ID},
		observability.Field{Key: "contact_id", Value: contact.ID},
	)

	if strings.TrimSpace(contact.Email) == "" {
		s.logger.Info(ctx, "skipping automation, contact has no email address")
		return Result{SkipReason: SkipNoEmail}, nil
	}

	now := s.now()
	if s.atDailyLimit(ctx, rule.OrganizationID, contact.ID, now) {
		s.logger.Info(ctx, "skipping automation, contact reached the daily email limit")
		return Result{SkipReason: SkipDailyLimit}, nil
	}

	params := store.CreateAutomationExecutionParams{
		OrganizationID: rule.OrganizationID,
		RuleID:         rule.ID,
		ContactID:      contact.ID,
		TriggerType:    triggerType,
		TriggerData:    store.JSONB(triggerData),
		Status:         store.ExecutionStatusPending,
		ScheduledFor:   now,
		MaxRetries:     s.cfg.DefaultMaxRetries,
	}
	if rule.SendDelayMinutes > 0 {
		params.Status = store.ExecutionStatusScheduled
		params.ScheduledFor = now.Add(time.Duration(rule.SendDelayMinutes) * time.Minute)
	}

	if rule.ABTestEnabled {
		if variant := s.pickVariant(ctx, rule.ID); variant != nil {
			params.ABVariantID = &variant.ID
			label := variant.Label
			params.ABVariant = &label
		}
	}

	execution, err := s.store.CreateAutomationExecution(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create automation execution: %w", err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "execution_id", Value: execution.ID})

	if err := s.store.IncrementRuleStat(ctx, rule.ID, store.RuleStatTriggered); err != nil {
		s.logger.Error(ctx, "failed to increment rule triggered counter", err)
	}

	result := Result{Execution: &execution}
	if execution.Status == store.ExecutionStatusPending && s.dispatcher != nil {
		result.Outcome = s.dispatcher.ProcessExecution(ctx, execution)
	} else {
		s.logger.Info(ctx, fmt.Sprintf("automation execution scheduled for %s", params.ScheduledFor.Format(time.RFC3339)))
	}
	return result, nil
}

// atDailyLimit is a read-only early check; dispatch holds the authoritative one.
func (s *Scheduler) atDailyLimit(ctx context.Context, orgID, contactID uuid.UUID, now time.Time) bool {
	settings := dispatch.DefaultSettings(s.cfg.DefaultDailyLimit)
	row, err := s.store.GetOrgSettings(ctx, orgID)
	switch {
	case err == nil:
		settings = dispatch.ResolveSettings(row)
	case !errors.Is(err, store.ErrNotFound):
		s.logger.Error(ctx, "failed to get org settings for daily limit pre-check", err)
		return false
	}
	if settings.DailyLimit <= 0 {
		return false
	}

	count, err := s.store.GetDailySendCount(ctx, orgID, contactID, settings.SendDate(now))
	if err != nil {
		s.logger.Error(ctx, "failed to get daily send count", err)
		return false
	}
	return count >= settings.DailyLimit
}

func (s *Scheduler) pickVariant(ctx context.Context, ruleID uuid.UUID) *store.ABVariant {
	test, err := s.store.GetActiveABTest(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error(ctx, "failed to get active ab test", err)
		}
		return nil
	}
	return SelectVariant(test.Variants, s.draw)
}

// SelectVariant picks an active variant with probability proportional to its weight.
// draw must return a uniform value in [0, 1).
func SelectVariant(variants []store.ABVariant, draw func() float64) *store.ABVariant {
	var total float64
	for _, v := range variants {
		if v.IsActive && v.Weight > 0 {
			total += v.Weight
		}
	}
	if total <= 0 {
		return nil
	}

	target := draw() * total
	var cumulative float64
	var last *store.ABVariant
	for i := range variants {
		v := &variants[i]
		if !v.IsActive || v.Weight <= 0 {
			continue
		}
		cumulative += v.Weight
		last = v
		if cumulative >= target {
			return v
		}
	}
	return last
}
