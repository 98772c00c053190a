package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"crm-automation/internal/automation/templating"
	"crm-automation/internal/automation/tracking"
	"crm-automation/internal/email"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Outcome of one execution attempt
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// SweepLockKey is held while a replica runs ProcessDue.
const SweepLockKey = "automation:dispatch:sweep"

var (
	ErrNoEmail          = errors.New("contact has no email address")
	ErrDailyLimit       = errors.New("daily automation email limit reached")
	ErrUnsubscribed     = errors.New("recipient has unsubscribed")
	ErrSuppressed       = errors.New("recipient is on the suppression list")
	ErrTemplateNotFound = errors.New("email template not found")
	ErrRuleNotFound     = errors.New("automation rule not found")
	ErrRuleInactive     = errors.New("automation rule is inactive")
	ErrContactNotFound  = errors.New("contact not found")
)

// retryDelays is indexed by the retry count of the failed attempt.
var retryDelays = []time.Duration{5 * time.Minute, 30 * time.Minute, 120 * time.Minute}

// RetryDelay returns the backoff before the next attempt after attempt number retryCount failed.
func RetryDelay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	if retryCount >= len(retryDelays) {
		return retryDelays[len(retryDelays)-1]
	}
	return retryDelays[retryCount]
}

// Summary aggregates one sweep
type Summary struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type Config struct {
	BatchSize         int
	Concurrency       int
	DefaultMaxRetries int
	DefaultDailyLimit int
	// LockTTL bounds how long a crashed replica can hold the sweep lock
	LockTTL time.Duration
}

type Worker struct {
	store        Store
	sender       Sender
	personalizer Personalizer
	instrumenter Instrumenter
	locker       Locker
	logger       *observability.Logger
	cfg          Config
	now          func() time.Time
}

// New creates a dispatch Worker. locker may be nil.
func New(store Store, sender Sender, personalizer Personalizer, instrumenter Instrumenter, locker Locker, cfg Config, logger *observability.Logger) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.DefaultMaxRetries <= 0 {
		cfg.DefaultMaxRetries = 3
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	return &Worker{
		store:        store,
		sender:       sender,
		personalizer: personalizer,
		instrumenter: instrumenter,
		locker:       locker,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

// ProcessDue runs one sweep over executions whose scheduled time has passed.
func (w *Worker) ProcessDue(ctx context.Context) (Summary, error) {
	if w.locker != nil {
		acquired, err := w.locker.AcquireLock(ctx, SweepLockKey, w.cfg.LockTTL)
		if err != nil {
			// the claim still protects against double sends
			w.logger.Error(ctx, "failed to acquire sweep lock, sweeping without it", err)
		} else if !acquired {
			w.logger.Info(ctx, "dispatch sweep already running on another replica")
			return Summary{}, nil
		} else {
			defer func() {
				if err := w.locker.ReleaseLock(context.WithoutCancel(ctx), SweepLockKey); err != nil {
					w.logger.Error(ctx, "failed to release sweep lock", err)
				}
			}()
		}
	}

	executions, err := w.store.GetDueExecutions(ctx, w.now(), w.cfg.BatchSize)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get due executions: %w", err)
	}
	if len(executions) == 0 {
		return Summary{}, nil
	}

	b, err := w.loadBatch(ctx, executions)
	if err != nil {
		return Summary{}, err
	}

	var (
		mu      sync.Mutex
		summary Summary
		g       errgroup.Group
	)
	g.SetLimit(w.cfg.Concurrency)

	for _, execution := range executions {
		g.Go(func() error {
			outcome := w.process(ctx, execution, b)
			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case OutcomeSent:
				summary.Sent++
			case OutcomeFailed:
				summary.Failed++
			default:
				summary.Skipped++
			}
			return nil
		})
	}
	_ = g.Wait()

	w.logger.Metrics(ctx,
		observability.MetricField{Key: "due_executions", Value: len(executions)},
		observability.MetricField{Key: "sent", Value: summary.Sent},
		observability.MetricField{Key: "failed", Value: summary.Failed},
		observability.MetricField{Key: "skipped", Value: summary.Skipped},
	)
	return summary, nil
}

// ProcessExecution runs one execution through validation and delivery.
func (w *Worker) ProcessExecution(ctx context.Context, execution store.AutomationExecution) Outcome {
	b, err := w.loadBatch(ctx, []store.AutomationExecution{execution})
	if err != nil {
		w.logger.Error(ctx, "failed to load execution dependencies", err)
		return OutcomeSkipped
	}
	return w.process(ctx, execution, b)
}

// batch holds everything a set of executions references, loaded in bulk.
type batch struct {
	rules     map[uuid.UUID]store.AutomationRule
	variants  map[uuid.UUID]store.ABVariant
	templates map[uuid.UUID]store.EmailTemplate
	settings  map[uuid.UUID]Settings
	contacts  map[uuid.UUID]store.ContactTemplateData
}

func (w *Worker) loadBatch(ctx context.Context, executions []store.AutomationExecution) (*batch, error) {
	ruleIDs := newIDSet()
	variantIDs := newIDSet()
	orgIDs := newIDSet()
	contactIDs := newIDSet()
	for _, e := range executions {
		ruleIDs.add(e.RuleID)
		orgIDs.add(e.OrganizationID)
		contactIDs.add(e.ContactID)
		if e.ABVariantID != nil {
			variantIDs.add(*e.ABVariantID)
		}
	}

	b := &batch{settings: make(map[uuid.UUID]Settings, len(orgIDs.ids))}
	var err error

	if b.rules, err = w.store.GetAutomationRulesByIDs(ctx, ruleIDs.ids); err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	b.variants = map[uuid.UUID]store.ABVariant{}
	if len(variantIDs.ids) > 0 {
		if b.variants, err = w.store.GetABVariantsByIDs(ctx, variantIDs.ids); err != nil {
			return nil, fmt.Errorf("failed to load ab variants: %w", err)
		}
	}

	templateIDs := newIDSet()
	for _, r := range b.rules {
		templateIDs.add(r.EmailTemplateID)
	}
	for _, v := range b.variants {
		templateIDs.add(v.TemplateID)
	}
	if b.templates, err = w.store.GetEmailTemplatesByIDs(ctx, templateIDs.ids); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	rows, err := w.store.GetOrgSettingsByIDs(ctx, orgIDs.ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load org settings: %w", err)
	}
	for _, orgID := range orgIDs.ids {
		if row, ok := rows[orgID]; ok {
			b.settings[orgID] = ResolveSettings(row)
		} else {
			b.settings[orgID] = DefaultSettings(w.cfg.DefaultDailyLimit)
		}
	}

	if b.contacts, err = w.store.GetContactsTemplateData(ctx, contactIDs.ids); err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return b, nil
}

// attempt carries the state of one execution through process.
type attempt struct {
	execution store.AutomationExecution
	rule      store.AutomationRule
	settings  Settings
	sendDate  string
	// reserved is set once a daily slot is held for this attempt
	reserved bool
}

// isTest reports a one-off test send. Test sends are never retried and do not
// touch rule counters or cooldowns.
func (a *attempt) isTest() bool {
	return a.execution.TriggerType == store.TriggerTypeTest
}

func (w *Worker) process(ctx context.Context, execution store.AutomationExecution, b *batch) Outcome {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "execution_id", Value: execution.ID},
		observability.Field{Key: "organization_id", Value: execution.OrganizationID},
		observability.Field{Key: "rule_id", Value: execution.RuleID},
		observability.Field{Key: "contact_id", Value: execution.ContactID},
	)

	now := w.now()
	a := &attempt{execution: execution, settings: b.settings[execution.OrganizationID]}
	a.sendDate = a.settings.SendDate(now)

	rule, ok := b.rules[execution.RuleID]
	if !ok {
		return w.fail(ctx, a, ErrRuleNotFound)
	}
	// test sends may target a rule that is still being drafted
	if !rule.IsActive && !a.isTest() {
		return w.fail(ctx, a, ErrRuleInactive)
	}
	a.rule = rule

	data, ok := b.contacts[execution.ContactID]
	if !ok {
		return w.fail(ctx, a, ErrContactNotFound)
	}
	to := strings.TrimSpace(data.Email)

	// 1. email
	if to == "" {
		return w.fail(ctx, a, ErrNoEmail)
	}

	// 2. daily limit
	if a.settings.DailyLimit > 0 {
		allowed, err := w.store.TryIncrementDailySend(ctx, execution.OrganizationID, execution.ContactID, a.sendDate, a.settings.DailyLimit)
		if err != nil {
			w.logger.Error(ctx, "failed to check daily send limit", err)
			return OutcomeSkipped
		}
		if !allowed {
			return w.fail(ctx, a, ErrDailyLimit)
		}
		a.reserved = true
	}

	// 3, 4. opt-outs
	unsubscribed, err := w.store.IsUnsubscribed(ctx, execution.OrganizationID, to)
	if err != nil {
		w.logger.Error(ctx, "failed to check unsubscribe list", err)
		return w.skip(ctx, a)
	}
	if unsubscribed {
		return w.fail(ctx, a, ErrUnsubscribed)
	}
	suppressed, err := w.store.IsSuppressed(ctx, execution.OrganizationID, to)
	if err != nil {
		w.logger.Error(ctx, "failed to check suppression list", err)
		return w.skip(ctx, a)
	}
	if suppressed {
		return w.fail(ctx, a, ErrSuppressed)
	}

	// 5. business hours
	if rule.EnforceBusinessHours && !a.settings.WithinBusinessHours(now) {
		next := a.settings.NextWindowStart(now)
		if err := w.store.RescheduleExecution(ctx, execution.ID, execution.Status, next); err != nil && !errors.Is(err, store.ErrNotFound) {
			w.logger.Error(ctx, "failed to defer execution to business hours", err)
		} else if err == nil {
			w.logger.Info(ctx, fmt.Sprintf("outside business hours, deferred to %s", next.Format(time.RFC3339)))
		}
		return w.skip(ctx, a)
	}

	// 6. claim
	claimed, err := w.store.ClaimExecution(ctx, execution.ID, execution.Status)
	if err != nil {
		w.logger.Error(ctx, "failed to claim execution", err)
		return w.skip(ctx, a)
	}
	if !claimed {
		w.logger.Info(ctx, "execution already claimed by another worker")
		return w.skip(ctx, a)
	}
	a.execution.Status = store.ExecutionStatusPending

	// 7. template
	tmpl, subject, err := resolveTemplate(rule, execution, b)
	if err != nil {
		return w.fail(ctx, a, err)
	}

	// 8 to 10. personalize, instrument, send
	resolved, err := w.deliver(ctx, a, data, tmpl.HTMLBody, subject, to)
	if err != nil {
		return w.retryOrFail(ctx, a, err)
	}

	// 11. settle
	if err := w.store.MarkExecutionSent(ctx, execution.ID, now, resolved); err != nil {
		w.logger.Error(ctx, "email sent but failed to mark execution sent", err)
	}
	if !a.isTest() {
		if err := w.store.IncrementRuleStat(ctx, rule.ID, store.RuleStatSent); err != nil {
			w.logger.Error(ctx, "failed to increment rule sent counter", err)
		}
		if _, err := w.store.IncrementCooldown(ctx, rule.ID, execution.ContactID, now); err != nil {
			w.logger.Error(ctx, "failed to increment cooldown", err)
		}
	}
	w.logger.Info(ctx, "automation email sent")
	return OutcomeSent
}

func resolveTemplate(rule store.AutomationRule, execution store.AutomationExecution, b *batch) (store.EmailTemplate, string, error) {
	templateID := rule.EmailTemplateID
	var subjectOverride *string
	if execution.ABVariantID != nil {
		if v, ok := b.variants[*execution.ABVariantID]; ok {
			templateID = v.TemplateID
			subjectOverride = v.SubjectOverride
		}
	}

	tmpl, ok := b.templates[templateID]
	if !ok {
		return store.EmailTemplate{}, "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	subject := tmpl.Subject
	if subjectOverride != nil && strings.TrimSpace(*subjectOverride) != "" {
		subject = *subjectOverride
	}
	return tmpl, subject, nil
}

// deliver personalizes, instruments and sends. Returns the resolved subject.
func (w *Worker) deliver(ctx context.Context, a *attempt, data store.ContactTemplateData, body, subject, to string) (string, error) {
	resolvedSubject, resolvedBody := w.personalizer.ResolveEmail(ctx, templating.Input{
		Contact:     data.Contact,
		TriggerData: a.execution.TriggerData,
		Preloaded:   &data,
	}, subject, body)

	instrumented, err := w.instrumenter.Instrument(resolvedBody, tracking.Recipient{
		ExecutionID:    a.execution.ID,
		OrganizationID: a.execution.OrganizationID,
		ContactID:      a.execution.ContactID,
		Email:          to,
	})
	if err != nil {
		return "", fmt.Errorf("failed to instrument email: %w", err)
	}

	err = w.sender.Send(ctx, email.Message{
		To:             to,
		Subject:        resolvedSubject,
		HTML:           instrumented.HTML,
		OrganizationID: a.execution.OrganizationID,
		ContactID:      a.execution.ContactID,
		ExecutionID:    a.execution.ID,
		RuleID:         a.rule.ID,
		UnsubscribeURL: instrumented.UnsubscribeURL,
	})
	if err != nil {
		return "", err
	}
	return resolvedSubject, nil
}

func (w *Worker) retryOrFail(ctx context.Context, a *attempt, cause error) Outcome {
	w.release(ctx, a)

	maxRetries := a.execution.MaxRetries
	if maxRetries <= 0 {
		maxRetries = w.cfg.DefaultMaxRetries
	}

	retryCount := a.execution.RetryCount
	if retryCount >= maxRetries || a.isTest() {
		msg := fmt.Sprintf("failed after %d attempts: %s", retryCount+1, cause.Error())
		return w.markFailed(ctx, a, msg)
	}

	nextRetryAt := w.now().Add(RetryDelay(retryCount))
	msg := fmt.Sprintf("attempt %d failed: %s", retryCount+1, cause.Error())
	if err := w.store.ScheduleExecutionRetry(ctx, a.execution.ID, retryCount+1, nextRetryAt, msg); err != nil {
		w.logger.Error(ctx, "failed to schedule execution retry", err)
		return OutcomeFailed
	}
	w.logger.InfoWithError(ctx, fmt.Sprintf("delivery failed, retry %d scheduled for %s", retryCount+1, nextRetryAt.Format(time.RFC3339)), cause)
	return OutcomeFailed
}

// fail records a permanent validation failure.
func (w *Worker) fail(ctx context.Context, a *attempt, cause error) Outcome {
	w.release(ctx, a)
	return w.markFailed(ctx, a, cause.Error())
}

func (w *Worker) markFailed(ctx context.Context, a *attempt, msg string) Outcome {
	err := w.store.MarkExecutionFailed(ctx, a.execution.ID, a.execution.Status, msg)
	if errors.Is(err, store.ErrNotFound) {
		w.logger.Info(ctx, "execution moved on before it could be failed")
		return OutcomeSkipped
	}
	if err != nil {
		w.logger.Error(ctx, "failed to mark execution failed", err)
		return OutcomeFailed
	}

	if !a.isTest() {
		if err := w.store.IncrementRuleStat(ctx, a.execution.RuleID, store.RuleStatFailed); err != nil {
			w.logger.Error(ctx, "failed to increment rule failed counter", err)
		}
	}
	w.logger.Info(ctx, "automation execution failed: "+msg)
	return OutcomeFailed
}

func (w *Worker) skip(ctx context.Context, a *attempt) Outcome {
	w.release(ctx, a)
	return OutcomeSkipped
}

// release gives back the daily slot taken by an attempt that did not send.
func (w *Worker) release(ctx context.Context, a *attempt) {
	if !a.reserved {
		return
	}
	a.reserved = false
	if err := w.store.ReleaseDailySend(ctx, a.execution.OrganizationID, a.execution.ContactID, a.sendDate); err != nil {
		w.logger.Error(ctx, "failed to release daily send slot", err)
	}
}

type idSet struct {
	seen map[uuid.UUID]struct{}
	ids  []uuid.UUID
}

func newIDSet() *idSet {
	return &idSet{seen: map[uuid.UUID]struct{}{}}
}

func (s *idSet) add(id uuid.UUID) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}
