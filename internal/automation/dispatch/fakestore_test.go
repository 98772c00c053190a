package dispatch

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store with the same conditional transition rules as the SQL.
type fakeStore struct {
	mu sync.Mutex

	executions map[uuid.UUID]*store.AutomationExecution
	rules      map[uuid.UUID]store.AutomationRule
	templates  map[uuid.UUID]store.EmailTemplate
	variants   map[uuid.UUID]store.ABVariant
	settings   map[uuid.UUID]store.OrgSettings
	contacts   map[uuid.UUID]store.ContactTemplateData

	daily        map[string]int
	cooldowns    map[string]store.Cooldown
	stats        map[uuid.UUID]map[store.RuleStat]int
	unsubscribed map[string]bool
	suppressed   map[string]bool

	loseClaims bool
	dueCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		executions:   map[uuid.UUID]*store.AutomationExecution{},
		rules:        map[uuid.UUID]store.AutomationRule{},
		templates:    map[uuid.UUID]store.EmailTemplate{},
		variants:     map[uuid.UUID]store.ABVariant{},
		settings:     map[uuid.UUID]store.OrgSettings{},
		contacts:     map[uuid.UUID]store.ContactTemplateData{},
		daily:        map[string]int{},
		cooldowns:    map[string]store.Cooldown{},
		stats:        map[uuid.UUID]map[store.RuleStat]int{},
		unsubscribed: map[string]bool{},
		suppressed:   map[string]bool{},
	}
}

func pairKey(a, b uuid.UUID, rest ...string) string {
	return strings.Join(append([]string{a.String(), b.String()}, rest...), "|")
}

func (f *fakeStore) execution(id uuid.UUID) store.AutomationExecution {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.executions[id]
}

func (f *fakeStore) stat(ruleID uuid.UUID, stat store.RuleStat) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats[ruleID][stat]
}

func (f *fakeStore) GetDueExecutions(_ context.Context, now time.Time, limit int) ([]store.AutomationExecution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dueCalls++
	var due []store.AutomationExecution
	for _, e := range f.executions {
		if e.Status == store.ExecutionStatusScheduled && e.ScheduledFor != nil && !e.ScheduledFor.After(now) {
			due = append(due, *e)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].CreatedAt.Before(due[j].CreatedAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (f *fakeStore) GetAutomationRulesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]store.AutomationRule, error) {
	out := map[uuid.UUID]store.AutomationRule{}
	for _, id := range ids {
		if r, ok := f.rules[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (f *fakeStore) GetEmailTemplatesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]store.EmailTemplate, error) {
	out := map[uuid.UUID]store.EmailTemplate{}
	for _, id := range ids {
		if t, ok := f.templates[id]; ok && t.IsActive {
			out[id] = t
		}
	}
	return out, nil
}

func (f *fakeStore) GetABVariantsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]store.ABVariant, error) {
	out := map[uuid.UUID]store.ABVariant{}
	for _, id := range ids {
		if v, ok := f.variants[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f *fakeStore) GetOrgSettingsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]store.OrgSettings, error) {
	out := map[uuid.UUID]store.OrgSettings{}
	for _, id := range ids {
		if s, ok := f.settings[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeStore) GetContactsTemplateData(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]store.ContactTemplateData, error) {
	out := map[uuid.UUID]store.ContactTemplateData{}
	for _, id := range ids {
		if c, ok := f.contacts[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeStore) TryIncrementDailySend(_ context.Context, orgID, contactID uuid.UUID, sendDate string, limit int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 {
		return false, nil
	}
	key := pairKey(orgID, contactID, sendDate)
	if f.daily[key] >= limit {
		return false, nil
	}
	f.daily[key]++
	return true, nil
}

func (f *fakeStore) ReleaseDailySend(_ context.Context, orgID, contactID uuid.UUID, sendDate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey(orgID, contactID, sendDate)
	if f.daily[key] > 0 {
		f.daily[key]--
	}
	return nil
}

func (f *fakeStore) IsUnsubscribed(_ context.Context, _ uuid.UUID, email string) (bool, error) {
	return f.unsubscribed[strings.ToLower(email)], nil
}

func (f *fakeStore) IsSuppressed(_ context.Context, _ uuid.UUID, email string) (bool, error) {
	return f.suppressed[strings.ToLower(email)], nil
}

func (f *fakeStore) transition(id uuid.UUID, from string, apply func(e *store.AutomationExecution)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.executions[id]
	if !ok || e.Status != from {
		return store.ErrNotFound
	}
	apply(e)
	return nil
}

func (f *fakeStore) ClaimExecution(_ context.Context, id uuid.UUID, fromStatus string) (bool, error) {
	if f.loseClaims {
		return false, nil
	}
	err := f.transition(id, fromStatus, func(e *store.AutomationExecution) { e.Status = store.ExecutionStatusPending })
	return err == nil, nil
}

func (f *fakeStore) MarkExecutionSent(_ context.Context, id uuid.UUID, sentAt time.Time, subject string) error {
	return f.transition(id, store.ExecutionStatusPending, func(e *store.AutomationExecution) {
		e.Status = store.ExecutionStatusSent
		e.SentAt = &sentAt
		e.EmailSubject = &subject
	})
}

func (f *fakeStore) ScheduleExecutionRetry(_ context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, msg string) error {
	return f.transition(id, store.ExecutionStatusPending, func(e *store.AutomationExecution) {
		e.Status = store.ExecutionStatusScheduled
		e.RetryCount = retryCount
		e.NextRetryAt = &nextRetryAt
		e.ScheduledFor = &nextRetryAt
		e.ErrorMessage = &msg
	})
}

func (f *fakeStore) MarkExecutionFailed(_ context.Context, id uuid.UUID, fromStatus, msg string) error {
	return f.transition(id, fromStatus, func(e *store.AutomationExecution) {
		e.Status = store.ExecutionStatusFailed
		e.ErrorMessage = &msg
	})
}

func (f *fakeStore) RescheduleExecution(_ context.Context, id uuid.UUID, fromStatus string, at time.Time) error {
	return f.transition(id, fromStatus, func(e *store.AutomationExecution) {
		e.Status = store.ExecutionStatusScheduled
		e.ScheduledFor = &at
	})
}

func (f *fakeStore) IncrementRuleStat(_ context.Context, ruleID uuid.UUID, stat store.RuleStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stats[ruleID] == nil {
		f.stats[ruleID] = map[store.RuleStat]int{}
	}
	f.stats[ruleID][stat]++
	return nil
}

func (f *fakeStore) IncrementCooldown(_ context.Context, ruleID, contactID uuid.UUID, sentAt time.Time) (store.Cooldown, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey(ruleID, contactID)
	c := f.cooldowns[key]
	c.RuleID, c.ContactID = ruleID, contactID
	c.SendCount++
	c.LastSentAt = sentAt
	f.cooldowns[key] = c
	return c, nil
}
