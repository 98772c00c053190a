package conditions

//go:generate go run go.uber.org/mock/mockgen@latest -source=evaluator.go -destination=mocks_test.go -package=conditions

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// Condition types
const (
	TypeContactField    = "contact_field"
	TypeCustomField     = "custom_field"
	TypeActivityHistory = "activity_history"
	TypeTimeCondition   = "time_condition"
	TypeUserTeam        = "user_team"
)

var (
	ErrUnknownConditionType = errors.New("unknown condition type")
	ErrInvalidCondition     = errors.New("invalid condition")
)

// Store is the auxiliary data a condition may need.
type Store interface {
	GetCustomFieldValues(ctx context.Context, contactID uuid.UUID) ([]store.CustomFieldValue, error)
	CountActivitiesSince(ctx context.Context, contactID uuid.UUID, activityType string, since time.Time) (int, error)
}

type Evaluator struct {
	store  Store
	logger *observability.Logger
	now    func() time.Time
}

func New(store Store, logger *observability.Logger) *Evaluator {
	return &Evaluator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate combines the conditions with logic (AND unless OR) against contact.
// loc is the organization's timezone for time conditions; nil means UTC.
// A condition that errors counts as false.
func (e *Evaluator) Evaluate(ctx context.Context, conds []store.RuleCondition, logic string, contact store.Contact, loc *time.Location) bool {
	if len(conds) == 0 {
		return true
	}
	if loc == nil {
		loc = time.UTC
	}

	ev := &evaluation{Evaluator: e, contact: contact, loc: loc}
	isOr := strings.EqualFold(logic, store.ConditionLogicOr)

	for i, cond := range conds {
		ok, err := ev.evaluate(ctx, cond)
		if err != nil {
			e.logger.Error(ctx, fmt.Sprintf("failed to evaluate condition %d (%s)", i, cond.Type), err)
			ok = false
		}
		if isOr && ok {
			return true
		}
		if !isOr && !ok {
			return false
		}
	}
	return !isOr
}

// evaluation holds per-call caches so custom fields are fetched at most once.
type evaluation struct {
	*Evaluator
	contact      store.Contact
	loc          *time.Location
	customFields []store.CustomFieldValue
	fetched      bool
}

func (ev *evaluation) evaluate(ctx context.Context, cond store.RuleCondition) (bool, error) {
	switch cond.Type {
	case TypeContactField:
		return compare(cond.Operator, contactField(ev.contact, cond.Field), cond.Value)

	case TypeCustomField:
		value, err := ev.customField(ctx, cond.Field)
		if err != nil {
			return false, err
		}
		return compare(cond.Operator, value, cond.Value)

	case TypeActivityHistory:
		return ev.activityHistory(ctx, cond)

	case TypeTimeCondition:
		return timeCondition(cond, ev.now().In(ev.loc)), nil

	case TypeUserTeam:
		return userTeam(cond, ev.contact), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownConditionType, cond.Type)
}

func (ev *evaluation) customField(ctx context.Context, name string) (*string, error) {
	if !ev.fetched {
		values, err := ev.store.GetCustomFieldValues(ctx, ev.contact.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get custom field values: %w", err)
		}
		ev.customFields = values
		ev.fetched = true
	}
	for _, cf := range ev.customFields {
		if strings.EqualFold(cf.FieldName, name) || cf.FieldID.String() == name {
			v := cf.Value
			return &v, nil
		}
	}
	return nil, nil
}

func (ev *evaluation) activityHistory(ctx context.Context, cond store.RuleCondition) (bool, error) {
	days := cond.WithinDays
	if days <= 0 {
		days = 30
	}
	since := ev.now().AddDate(0, 0, -days)

	count, err := ev.store.CountActivitiesSince(ctx, ev.contact.ID, cond.ActivityType, since)
	if err != nil {
		return false, fmt.Errorf("failed to count activities: %w", err)
	}

	op, threshold := cond.Operator, cond.Value
	if op == "" {
		op = OpGreaterThanOrEqual
	}
	if threshold == "" {
		threshold = "1"
	}
	actual := strconv.Itoa(count)
	return compare(op, &actual, threshold)
}

func timeCondition(cond store.RuleCondition, now time.Time) bool {
	if len(cond.DaysOfWeek) > 0 && !slices.Contains(cond.DaysOfWeek, int(now.Weekday())) {
		return false
	}
	if len(cond.Months) > 0 && !slices.Contains(cond.Months, int(now.Month())) {
		return false
	}
	if cond.HourStart != nil || cond.HourEnd != nil {
		start, end := 0, 24
		if cond.HourStart != nil {
			start = *cond.HourStart
		}
		if cond.HourEnd != nil {
			end = *cond.HourEnd
		}
		hour := now.Hour()
		if start <= end {
			if hour < start || hour >= end {
				return false
			}
		} else if hour < start && hour >= end {
			// window wraps midnight
			return false
		}
	}
	return true
}

func userTeam(cond store.RuleCondition, contact store.Contact) bool {
	if len(cond.UserIDs) == 0 && len(cond.TeamIDs) == 0 {
		return true
	}
	if contact.AssignedTo != nil && slices.Contains(cond.UserIDs, contact.AssignedTo.String()) {
		return true
	}
	if contact.AssignedTeamID != nil && slices.Contains(cond.TeamIDs, contact.AssignedTeamID.String()) {
		return true
	}
	return false
}

func contactField(c store.Contact, field string) *string {
	var v string
	switch strings.ToLower(field) {
	case "first_name":
		v = c.FirstName
	case "last_name":
		v = c.LastName
	case "full_name", "name":
		v = strings.TrimSpace(c.FirstName + " " + c.LastName)
	case "email":
		v = c.Email
	case "phone":
		v = c.Phone
	case "company":
		v = c.Company
	case "job_title":
		v = c.JobTitle
	case "location":
		v = c.Location
	case "status":
		v = c.Status
	case "source":
		v = c.Source
	case "pipeline_stage_id":
		return uuidString(c.PipelineStageID)
	case "assigned_to":
		return uuidString(c.AssignedTo)
	case "assigned_team_id":
		return uuidString(c.AssignedTeamID)
	default:
		return nil
	}
	// contact columns read NULL as ""; a blank attribute is absent
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// Validate checks a condition list before it is stored on a rule.
func Validate(conds []store.RuleCondition) error {
	for i, cond := range conds {
		switch cond.Type {
		case TypeContactField, TypeCustomField:
			if cond.Field == "" {
				return fmt.Errorf("%w: condition %d requires field", ErrInvalidCondition, i)
			}
			if !IsKnownOperator(cond.Operator) {
				return fmt.Errorf("%w: condition %d has unknown operator %q", ErrInvalidCondition, i, cond.Operator)
			}
		case TypeActivityHistory:
			if cond.Operator != "" && !IsKnownOperator(cond.Operator) {
				return fmt.Errorf("%w: condition %d has unknown operator %q", ErrInvalidCondition, i, cond.Operator)
			}
			if cond.WithinDays < 0 {
				return fmt.Errorf("%w: condition %d within_days must not be negative", ErrInvalidCondition, i)
			}
		case TypeTimeCondition:
			for _, d := range cond.DaysOfWeek {
				if d < 0 || d > 6 {
					return fmt.Errorf("%w: condition %d day of week %d out of range", ErrInvalidCondition, i, d)
				}
			}
			for _, m := range cond.Months {
				if m < 1 || m > 12 {
					return fmt.Errorf("%w: condition %d month %d out of range", ErrInvalidCondition, i, m)
				}
			}
		case TypeUserTeam:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownConditionType, cond.Type)
		}
	}
	return nil
}
