package cooldown

//go:generate go run go.uber.org/mock/mockgen@latest -source=governor.go -destination=mocks_test.go -package=cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// Store reads the persisted (rule, contact) counter. Increments happen in the dispatch worker.
type Store interface {
	GetCooldown(ctx context.Context, ruleID, contactID uuid.UUID) (store.Cooldown, error)
}

// Denial reasons
const (
	ReasonMaxSends = "max_sends_reached"
	ReasonCooldown = "cooldown_active"
)

type Governor struct {
	store  Store
	logger *observability.Logger
	now    func() time.Time
}

func New(store Store, logger *observability.Logger) *Governor {
	return &Governor{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CanSend reports whether rule may fire again for contactID.
func (g *Governor) CanSend(ctx context.Context, rule store.AutomationRule, contactID uuid.UUID) (bool, error) {
	if rule.MaxSendsPerContact == nil && rule.CooldownPeriodDays == nil {
		return true, nil
	}

	record, err := g.store.GetCooldown(ctx, rule.ID, contactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to get cooldown: %w", err)
	}

	allowed, reason := Allows(rule, record, g.now())
	if !allowed {
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "rule_id", Value: rule.ID},
			observability.Field{Key: "contact_id", Value: contactID},
			observability.Field{Key: "send_count", Value: record.SendCount},
			observability.Field{Key: "reason", Value: reason},
		)
		g.logger.Info(ctx, "automation rule held back by cooldown")
	}
	return allowed, nil
}

// Allows applies the rule's cooldown policy to an existing record at now.
func Allows(rule store.AutomationRule, record store.Cooldown, now time.Time) (bool, string) {
	if rule.MaxSendsPerContact != nil && record.SendCount >= *rule.MaxSendsPerContact {
		return false, ReasonMaxSends
	}
	if rule.CooldownPeriodDays != nil {
		until := record.LastSentAt.Add(time.Duration(*rule.CooldownPeriodDays) * 24 * time.Hour)
		if now.Before(until) {
			return false, ReasonCooldown
		}
	}
	return true, ""
}
