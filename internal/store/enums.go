package store

// Execution statuses. These strings are the persisted contract of automation_executions.status.
const (
	ExecutionStatusPending   = "pending"
	ExecutionStatusScheduled = "scheduled"
	ExecutionStatusSent      = "sent"
	ExecutionStatusFailed    = "failed"
)

// Trigger types
const (
	TriggerTypeStageChange       = "stage_change"
	TriggerTypeDispositionSet    = "disposition_set"
	TriggerTypeActivityLogged    = "activity_logged"
	TriggerTypeFieldUpdated      = "field_updated"
	TriggerTypeInactivity        = "inactivity"
	TriggerTypeTimeBased         = "time_based"
	TriggerTypeAssignmentChanged = "assignment_changed"
	TriggerTypeEmailEngagement   = "email_engagement"
	TriggerTypeTest              = "test"
)

// Condition combinators
const (
	ConditionLogicAnd = "AND"
	ConditionLogicOr  = "OR"
)

// Email engagement event types
const (
	EmailEventOpened  = "opened"
	EmailEventClicked = "clicked"
)

// Click link kinds
const (
	LinkTypeCTA  = "cta"
	LinkTypeLink = "link"
)

// Unsubscribe sources
const (
	UnsubscribeSourceLink       = "link"
	UnsubscribeSourceOneClick   = "one_click"
	UnsubscribeSourceAutomation = "automation"
)

// RuleStat names a running counter on automation_rules.
type RuleStat string

const (
	RuleStatTriggered RuleStat = "triggered"
	RuleStatSent      RuleStat = "sent"
	RuleStatFailed    RuleStat = "failed"
)
