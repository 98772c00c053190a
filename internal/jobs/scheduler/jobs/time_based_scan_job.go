package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-automation/internal/automation/triggers"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"
)

// TimeBasedScanJob emits time_based events for contacts whose date field plus
// the rule's offset lands on today (UTC). Each contact fires at most once per rule per day.
type TimeBasedScanJob struct {
	store     ScanStore
	publisher TriggerPublisher
	logger    *observability.Logger
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// NewTimeBasedScanJob creates a new time based scan job
func NewTimeBasedScanJob(store ScanStore, publisher TriggerPublisher, logger *observability.Logger, interval time.Duration, batchSize int) *TimeBasedScanJob {
	if interval == 0 {
		interval = time.Hour
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &TimeBasedScanJob{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
		now:       time.Now,
	}
}

func (j *TimeBasedScanJob) Name() string {
	return "automation_time_based_scan"
}

func (j *TimeBasedScanJob) Schedule() time.Duration {
	return j.interval
}

func (j *TimeBasedScanJob) Run(ctx context.Context) error {
	rules, err := j.store.GetActiveRulesByTriggerAllOrgs(ctx, store.TriggerTypeTimeBased)
	if err != nil {
		return fmt.Errorf("failed to load time based rules: %w", err)
	}

	today := j.now().UTC().Format("2006-01-02")
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
			j.logger.Error(ruleCtx, "skipping time based rule with unreadable config", err)
			continue
		}
		cfg, ok := parsed.(triggers.TimeBasedConfig)
		if !ok || cfg.Validate() != nil {
			j.logger.Warn(ruleCtx, "skipping time based rule without a date_field")
			continue
		}

		contacts, err := j.store.ListContactsByDateField(ruleCtx, rule.OrganizationID, rule.ID, cfg.DateField, cfg.OffsetDays, today, j.batchSize)
		if err != nil {
			j.logger.Error(ruleCtx, "failed to list contacts by date field", err)
			continue
		}

		for _, contact := range contacts {
			data := map[string]interface{}{
				"date_field":  cfg.DateField,
				"offset_days": cfg.OffsetDays,
				"date":        today,
			}
			if err := j.publisher.PublishTrigger(ruleCtx, rule.OrganizationID, contact.ID, store.TriggerTypeTimeBased, data); err != nil {
				j.logger.Error(ruleCtx, "failed to publish time based event", err)
				continue
			}
			published++
		}
	}

	if published > 0 {
		j.logger.Info(ctx, fmt.Sprintf("Time based scan published %d events for %s", published, today))
	}
	return nil
}
