package triggers

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Data is the event payload a trigger is matched against.
type Data map[string]interface{}

func (d Data) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// first returns the first non-empty value among keys.
func (d Data) first(keys ...string) string {
	for _, k := range keys {
		if v := d.String(k); v != "" {
			return v
		}
	}
	return ""
}

func (d Data) Number(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (d Data) Time(key string) (time.Time, bool) {
	s := d.String(key)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

// Matches parses the stored config and matches it. Unknown types and bad configs never match.
func Matches(triggerType string, rawConfig []byte, data Data) bool {
	cfg, err := Parse(triggerType, rawConfig)
	if err != nil {
		return false
	}
	return Match(cfg, data)
}

// Match decides whether an event of the config's trigger type satisfies the config.
func Match(cfg Config, data Data) bool {
	switch c := cfg.(type) {
	case StageChangeConfig:
		return wildcardEquals(c.FromStageID, data.String("from_stage_id")) &&
			wildcardEquals(c.ToStageID, data.String("to_stage_id"))

	case DispositionSetConfig:
		if len(c.DispositionIDs) > 0 && !slices.Contains(c.DispositionIDs, data.String("disposition_id")) {
			return false
		}
		if len(c.SubDispositionIDs) > 0 && !slices.Contains(c.SubDispositionIDs, data.String("sub_disposition_id")) {
			return false
		}
		return true

	case ActivityLoggedConfig:
		if len(c.ActivityTypes) > 0 && !containsFold(c.ActivityTypes, data.String("activity_type")) {
			return false
		}
		if c.MinDurationSeconds != nil {
			duration, ok := data.Number("duration")
			if !ok || duration < *c.MinDurationSeconds {
				return false
			}
		}
		return true

	case FieldUpdatedConfig:
		return matchFieldUpdated(c, data)

	case InactivityConfig, TimeBasedConfig:
		// candidates are selected by the periodic scans before the event is emitted
		return true

	case AssignmentChangedConfig:
		if len(c.UserIDs) > 0 && !slices.Contains(c.UserIDs, data.first("new_assigned_to", "assigned_to")) {
			return false
		}
		if len(c.TeamIDs) > 0 && !slices.Contains(c.TeamIDs, data.first("new_team_id", "team_id")) {
			return false
		}
		return true

	case EmailEngagementConfig:
		if c.EngagementType != "" && !strings.EqualFold(c.EngagementType, data.String("engagement_type")) {
			return false
		}
		if c.WithinHours != nil {
			engagedAt, ok1 := data.Time("engaged_at")
			sentAt, ok2 := data.Time("sent_at")
			if !ok1 || !ok2 {
				return false
			}
			elapsed := engagedAt.Sub(sentAt)
			if elapsed < 0 || elapsed.Hours() > *c.WithinHours {
				return false
			}
		}
		return true
	}
	return false
}

func matchFieldUpdated(c FieldUpdatedConfig, data Data) bool {
	if c.FieldID != "" && c.FieldID != Wildcard && c.FieldID != data.String("field_id") {
		return false
	}

	newValue := data.String("new_value")
	switch c.ChangeType {
	case ChangeSet:
		if newValue == "" {
			return false
		}
	case ChangeCleared:
		if newValue != "" {
			return false
		}
	}

	if c.Threshold != "" {
		op, limit, err := parseThreshold(c.Threshold)
		if err != nil {
			return false
		}
		v, err := strconv.ParseFloat(newValue, 64)
		if err != nil {
			return false
		}
		switch op {
		case ">":
			return v > limit
		case ">=":
			return v >= limit
		case "<":
			return v < limit
		case "<=":
			return v <= limit
		}
	}
	return true
}

func parseThreshold(s string) (string, float64, error) {
	s = strings.TrimSpace(s)
	var op string
	for _, candidate := range []string{">=", "<=", ">", "<"} {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return "", 0, fmt.Errorf("threshold %q must start with >, >=, < or <=", s)
	}
	limit, err := strconv.ParseFloat(strings.TrimSpace(s[len(op):]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("threshold %q is not numeric", s)
	}
	return op, limit, nil
}

func wildcardEquals(configured, actual string) bool {
	if configured == "" || configured == Wildcard {
		return true
	}
	return configured == actual
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
