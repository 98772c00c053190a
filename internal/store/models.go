package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JSONB is a custom type for JSONB object fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSONB")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*j = JSONB{}
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// RawJSON holds a JSONB column whose shape is decided by the caller (trigger config).
type RawJSON []byte

// Value implements the driver.Valuer interface for RawJSON
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return []byte("{}"), nil
	}
	return []byte(r), nil
}

// Scan implements the sql.Scanner interface for RawJSON
func (r *RawJSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = append(RawJSON(nil), v...)
	case string:
		*r = RawJSON(v)
	default:
		return fmt.Errorf("unsupported type for RawJSON: %T", value)
	}
	return nil
}

// MarshalJSON emits the raw document, or null when unset.
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a copy of the raw document.
func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append(RawJSON(nil), data...)
	return nil
}

// RuleCondition is one typed predicate of a rule's condition list.
type RuleCondition struct {
	Type         string   `json:"type"`
	Field        string   `json:"field,omitempty"`
	Operator     string   `json:"operator,omitempty"`
	Value        string   `json:"value,omitempty"`
	ActivityType string   `json:"activity_type,omitempty"`
	WithinDays   int      `json:"within_days,omitempty"`
	DaysOfWeek   []int    `json:"days_of_week,omitempty"`
	HourStart    *int     `json:"hour_start,omitempty"`
	HourEnd      *int     `json:"hour_end,omitempty"`
	Months       []int    `json:"months,omitempty"`
	UserIDs      []string `json:"user_ids,omitempty"`
	TeamIDs      []string `json:"team_ids,omitempty"`
}

// RuleConditions is the JSONB array stored on automation_rules.conditions
type RuleConditions []RuleCondition

// Value implements the driver.Valuer interface for RuleConditions
func (c RuleConditions) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for RuleConditions
func (c *RuleConditions) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*c = RuleConditions{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for RuleConditions: %T", value)
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*c = RuleConditions{}
		return nil
	}
	return json.Unmarshal(bytes, (*[]RuleCondition)(c))
}

// AutomationRule is a tenant configured trigger -> email mapping
type AutomationRule struct {
	ID                   uuid.UUID      `db:"id" json:"id"`
	OrganizationID       uuid.UUID      `db:"organization_id" json:"organization_id"`
	Name                 string         `db:"name" json:"name"`
	Description          *string        `db:"description" json:"description,omitempty"`
	TriggerType          string         `db:"trigger_type" json:"trigger_type"`
	TriggerConfig        RawJSON        `db:"trigger_config" json:"trigger_config"`
	Conditions           RuleConditions `db:"conditions" json:"conditions"`
	ConditionLogic       string         `db:"condition_logic" json:"condition_logic"`
	EmailTemplateID      uuid.UUID      `db:"email_template_id" json:"email_template_id"`
	SendDelayMinutes     int            `db:"send_delay_minutes" json:"send_delay_minutes"`
	MaxSendsPerContact   *int           `db:"max_sends_per_contact" json:"max_sends_per_contact,omitempty"`
	CooldownPeriodDays   *int           `db:"cooldown_period_days" json:"cooldown_period_days,omitempty"`
	EnforceBusinessHours bool           `db:"enforce_business_hours" json:"enforce_business_hours"`
	IsActive             bool           `db:"is_active" json:"is_active"`
	Priority             int            `db:"priority" json:"priority"`
	ABTestEnabled        bool           `db:"ab_test_enabled" json:"ab_test_enabled"`
	TotalTriggered       int            `db:"total_triggered" json:"total_triggered"`
	TotalSent            int            `db:"total_sent" json:"total_sent"`
	TotalFailed          int            `db:"total_failed" json:"total_failed"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at" json:"updated_at"`
}

// AutomationExecution is one firing of a rule for one contact
type AutomationExecution struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	RuleID         uuid.UUID  `db:"rule_id" json:"rule_id"`
	ContactID      uuid.UUID  `db:"contact_id" json:"contact_id"`
	TriggerType    string     `db:"trigger_type" json:"trigger_type"`
	TriggerData    JSONB      `db:"trigger_data" json:"trigger_data"`
	Status         string     `db:"status" json:"status"`
	ScheduledFor   *time.Time `db:"scheduled_for" json:"scheduled_for,omitempty"`
	SentAt         *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	EmailSubject   *string    `db:"email_subject" json:"email_subject,omitempty"`
	ErrorMessage   *string    `db:"error_message" json:"error_message,omitempty"`
	RetryCount     int        `db:"retry_count" json:"retry_count"`
	MaxRetries     int        `db:"max_retries" json:"max_retries"`
	NextRetryAt    *time.Time `db:"next_retry_at" json:"next_retry_at,omitempty"`
	ABVariantID    *uuid.UUID `db:"ab_variant_id" json:"ab_variant_id,omitempty"`
	ABVariant      *string    `db:"ab_variant" json:"ab_variant,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Cooldown tracks sends of one rule to one contact
type Cooldown struct {
	RuleID     uuid.UUID `db:"rule_id" json:"rule_id"`
	ContactID  uuid.UUID `db:"contact_id" json:"contact_id"`
	LastSentAt time.Time `db:"last_sent_at" json:"last_sent_at"`
	SendCount  int       `db:"send_count" json:"send_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ABTest is the active variant test of a rule
type ABTest struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	RuleID    uuid.UUID   `db:"rule_id" json:"rule_id"`
	Name      string      `db:"name" json:"name"`
	IsActive  bool        `db:"is_active" json:"is_active"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	Variants  []ABVariant `db:"-" json:"variants"`
}

// ABVariant is one weighted arm of an ABTest
type ABVariant struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ABTestID        uuid.UUID `db:"ab_test_id" json:"ab_test_id"`
	Label           string    `db:"label" json:"label"`
	TemplateID      uuid.UUID `db:"template_id" json:"template_id"`
	SubjectOverride *string   `db:"subject_override" json:"subject_override,omitempty"`
	Weight          float64   `db:"weight" json:"weight"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}

// EmailTemplate is an organization's reusable email body
type EmailTemplate struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
	Subject        string    `db:"subject" json:"subject"`
	HTMLBody       string    `db:"html_body" json:"html_body"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Contact is the CRM record the engine personalizes against
type Contact struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	OrganizationID  uuid.UUID  `db:"organization_id" json:"organization_id"`
	FirstName       string     `db:"first_name" json:"first_name"`
	LastName        string     `db:"last_name" json:"last_name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	Company         string     `db:"company" json:"company"`
	JobTitle        string     `db:"job_title" json:"job_title"`
	Location        string     `db:"location" json:"location"`
	Status          string     `db:"status" json:"status"`
	Source          string     `db:"source" json:"source"`
	PipelineStageID *uuid.UUID `db:"pipeline_stage_id" json:"pipeline_stage_id,omitempty"`
	AssignedTo      *uuid.UUID `db:"assigned_to" json:"assigned_to,omitempty"`
	AssignedTeamID  *uuid.UUID `db:"assigned_team_id" json:"assigned_team_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ContactTemplateData is a contact joined with everything templates may reference
type ContactTemplateData struct {
	Contact
	PipelineStageName string `db:"pipeline_stage_name" json:"pipeline_stage_name"`
	AssignedUserName  string `db:"assigned_user_name" json:"assigned_user_name"`
	AssignedUserEmail string `db:"assigned_user_email" json:"assigned_user_email"`
	CustomFields      JSONB  `db:"custom_fields" json:"custom_fields"`
}

// CustomFieldValue is a contact's value for an org-defined field
type CustomFieldValue struct {
	FieldID   uuid.UUID `db:"field_id" json:"field_id"`
	FieldName string    `db:"field_name" json:"field_name"`
	Value     string    `db:"value" json:"value"`
}

// PipelineStage is a named step of an organization's pipeline
type PipelineStage struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// User is a CRM seat that contacts can be assigned to
type User struct {
	ID       uuid.UUID `db:"id" json:"id"`
	FullName string    `db:"full_name" json:"full_name"`
	Email    string    `db:"email" json:"email"`
}

// Disposition is a call outcome label
type Disposition struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
}

// OrgSettings holds per-tenant automation limits and business hours
type OrgSettings struct {
	OrganizationID            uuid.UUID     `db:"organization_id" json:"organization_id"`
	MaxAutomationEmailsPerDay int           `db:"max_automation_emails_per_day" json:"max_automation_emails_per_day"`
	BusinessHoursStart        string        `db:"business_hours_start" json:"business_hours_start"`
	BusinessHoursEnd          string        `db:"business_hours_end" json:"business_hours_end"`
	BusinessDays              pq.Int64Array `db:"business_days" json:"business_days"`
	Timezone                  string        `db:"timezone" json:"timezone"`
}

// EmailEvent is a recorded open or click
type EmailEvent struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ExecutionID uuid.UUID `db:"execution_id" json:"execution_id"`
	EventType   string    `db:"event_type" json:"event_type"`
	LinkURL     *string   `db:"link_url" json:"link_url,omitempty"`
	LinkType    *string   `db:"link_type" json:"link_type,omitempty"`
	ClientIP    string    `db:"client_ip" json:"client_ip"`
	UserAgent   string    `db:"user_agent" json:"user_agent"`
	DeviceType  string    `db:"device_type" json:"device_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
