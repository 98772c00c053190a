package triggers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"crm-automation/internal/store"
)

var (
	ErrUnknownTriggerType = errors.New("unknown trigger type")
	ErrInvalidConfig      = errors.New("invalid trigger config")
)

// Wildcard matches any value in id fields.
const Wildcard = "any"

// Change types for field_updated
const (
	ChangeAny     = "any"
	ChangeSet     = "set"
	ChangeCleared = "cleared"
)

// Config is the per trigger type configuration of a rule. Each trigger type has exactly one variant.
type Config interface {
	TriggerType() string
	Validate() error
}

type StageChangeConfig struct {
	FromStageID string `json:"from_stage_id,omitempty"`
	ToStageID   string `json:"to_stage_id,omitempty"`
}

type DispositionSetConfig struct {
	DispositionIDs    []string `json:"disposition_ids,omitempty"`
	SubDispositionIDs []string `json:"sub_disposition_ids,omitempty"`
}

type ActivityLoggedConfig struct {
	ActivityTypes      []string `json:"activity_types,omitempty"`
	MinDurationSeconds *float64 `json:"min_duration_seconds,omitempty"`
}

type FieldUpdatedConfig struct {
	FieldID    string `json:"field_id,omitempty"`
	ChangeType string `json:"change_type,omitempty"`
	// Threshold is a comparison against the new numeric value, e.g. ">100" or "<=5".
	Threshold string `json:"threshold,omitempty"`
}

type InactivityConfig struct {
	InactiveDays int `json:"inactive_days"`
}

type TimeBasedConfig struct {
	// DateField is "created_at" or the name of a date valued custom field.
	DateField  string `json:"date_field"`
	OffsetDays int    `json:"offset_days"`
}

type AssignmentChangedConfig struct {
	UserIDs []string `json:"user_ids,omitempty"`
	TeamIDs []string `json:"team_ids,omitempty"`
}

type EmailEngagementConfig struct {
	EngagementType string   `json:"engagement_type,omitempty"`
	WithinHours    *float64 `json:"within_hours,omitempty"`
}

func (StageChangeConfig) TriggerType() string       { return store.TriggerTypeStageChange }
func (DispositionSetConfig) TriggerType() string    { return store.TriggerTypeDispositionSet }
func (ActivityLoggedConfig) TriggerType() string    { return store.TriggerTypeActivityLogged }
func (FieldUpdatedConfig) TriggerType() string      { return store.TriggerTypeFieldUpdated }
func (InactivityConfig) TriggerType() string        { return store.TriggerTypeInactivity }
func (TimeBasedConfig) TriggerType() string         { return store.TriggerTypeTimeBased }
func (AssignmentChangedConfig) TriggerType() string { return store.TriggerTypeAssignmentChanged }
func (EmailEngagementConfig) TriggerType() string   { return store.TriggerTypeEmailEngagement }

func (StageChangeConfig) Validate() error       { return nil }
func (DispositionSetConfig) Validate() error    { return nil }
func (AssignmentChangedConfig) Validate() error { return nil }

func (c ActivityLoggedConfig) Validate() error {
	if c.MinDurationSeconds != nil && *c.MinDurationSeconds < 0 {
		return fmt.Errorf("%w: min_duration_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c FieldUpdatedConfig) Validate() error {
	switch c.ChangeType {
	case "", ChangeAny, ChangeSet, ChangeCleared:
	default:
		return fmt.Errorf("%w: change_type must be one of any, set, cleared", ErrInvalidConfig)
	}
	if c.Threshold != "" {
		if _, _, err := parseThreshold(c.Threshold); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
		}
	}
	return nil
}

func (c InactivityConfig) Validate() error {
	if c.InactiveDays <= 0 {
		return fmt.Errorf("%w: inactive_days must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c TimeBasedConfig) Validate() error {
	if strings.TrimSpace(c.DateField) == "" {
		return fmt.Errorf("%w: date_field is required", ErrInvalidConfig)
	}
	return nil
}

func (c EmailEngagementConfig) Validate() error {
	switch c.EngagementType {
	case "", store.EmailEventOpened, store.EmailEventClicked:
	default:
		return fmt.Errorf("%w: engagement_type must be opened or clicked", ErrInvalidConfig)
	}
	if c.WithinHours != nil && *c.WithinHours <= 0 {
		return fmt.Errorf("%w: within_hours must be positive", ErrInvalidConfig)
	}
	return nil
}

// Parse decodes a stored trigger config into the variant for triggerType.
// An empty document decodes to the zero variant.
func Parse(triggerType string, raw []byte) (Config, error) {
	var cfg Config
	switch triggerType {
	case store.TriggerTypeStageChange:
		cfg = &StageChangeConfig{}
	case store.TriggerTypeDispositionSet:
		cfg = &DispositionSetConfig{}
	case store.TriggerTypeActivityLogged:
		cfg = &ActivityLoggedConfig{}
	case store.TriggerTypeFieldUpdated:
		cfg = &FieldUpdatedConfig{}
	case store.TriggerTypeInactivity:
		cfg = &InactivityConfig{}
	case store.TriggerTypeTimeBased:
		cfg = &TimeBasedConfig{}
	case store.TriggerTypeAssignmentChanged:
		cfg = &AssignmentChangedConfig{}
	case store.TriggerTypeEmailEngagement:
		cfg = &EmailEngagementConfig{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTriggerType, triggerType)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
		}
	}

	return deref(cfg), nil
}

// deref returns the value form so callers can type switch on plain structs.
func deref(cfg Config) Config {
	switch c := cfg.(type) {
	case *StageChangeConfig:
		return *c
	case *DispositionSetConfig:
		return *c
	case *ActivityLoggedConfig:
		return *c
	case *FieldUpdatedConfig:
		return *c
	case *InactivityConfig:
		return *c
	case *TimeBasedConfig:
		return *c
	case *AssignmentChangedConfig:
		return *c
	case *EmailEngagementConfig:
		return *c
	}
	return cfg
}

// IsKnown reports whether triggerType names a rule trigger.
func IsKnown(triggerType string) bool {
	switch triggerType {
	case store.TriggerTypeStageChange, store.TriggerTypeDispositionSet, store.TriggerTypeActivityLogged,
		store.TriggerTypeFieldUpdated, store.TriggerTypeInactivity, store.TriggerTypeTimeBased,
		store.TriggerTypeAssignmentChanged, store.TriggerTypeEmailEngagement:
		return true
	}
	return false
}
