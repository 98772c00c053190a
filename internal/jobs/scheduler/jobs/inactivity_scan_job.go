package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-automation/internal/automation/triggers"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"
)

// InactivityScanJob emits inactivity events for contacts nobody has touched
// within a rule's inactive_days window.
type InactivityScanJob struct {
	store     ScanStore
	publisher TriggerPublisher
	logger    *observability.Logger
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// NewInactivityScanJob creates a new inactivity scan job
func NewInactivityScanJob(store ScanStore, publisher TriggerPublisher, logger *observability.Logger, interval time.Duration, batchSize int) *InactivityScanJob {
	if interval == 0 {
		interval = time.Hour
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &InactivityScanJob{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
		now:       time.Now,
	}
}

func (j *InactivityScanJob) Name() string {
	return "automation_inactivity_scan"
}

func (j *InactivityScanJob) Schedule() time.Duration {
	return j.interval
}

func (j *InactivityScanJob) Run(ctx context.Context) error {
	rules, err := j.store.GetActiveRulesByTriggerAllOrgs(ctx, store.TriggerTypeInactivity)
	if err != nil {
		return fmt.Errorf("failed to load inactivity rules: %w", err)
	}

	published := 0
	for _, rule := range rules {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ruleCtx := observability.WithFields(ctx,
			observability.Field{Key: "organization_id", Value: rule.OrganizationID},
			observability.Field{Key: "rule_id", Value: rule.ID},
		)

		parsed, err := triggers.Parse(rule.TriggerType, rule.TriggerConfig)
		if err != nil {
			j.logger.Error(ruleCtx, "skipping inactivity rule with unreadable config", err)
			continue
		}
		cfg, ok := parsed.(triggers.InactivityConfig)
		if !ok || cfg.Validate() != nil {
			j.logger.Warn(ruleCtx, "skipping inactivity rule without a valid inactive_days")
			continue
		}

		cutoff := j.now().AddDate(0, 0, -cfg.InactiveDays)
		contacts, err := j.store.ListInactiveContacts(ruleCtx, rule.OrganizationID, cutoff, rule.ID, j.batchSize)
		if err != nil {
			j.logger.Error(ruleCtx, "failed to list inactive contacts", err)
			continue
		}

		for _, contact := range contacts {
			data := map[string]interface{}{
				"inactive_days":   cfg.InactiveDays,
				"last_updated_at": contact.UpdatedAt.UTC().Format(time.RFC3339),
			}
			if err := j.publisher.PublishTrigger(ruleCtx, rule.OrganizationID, contact.ID, store.TriggerTypeInactivity, data); err != nil {
				j.logger.Error(ruleCtx, "failed to publish inactivity event", err)
				continue
			}
			published++
		}
	}

	if published > 0 {
		j.logger.Info(ctx, fmt.Sprintf("Inactivity scan published %d events across %d rules", published, len(rules)))
	}
	return nil
}
