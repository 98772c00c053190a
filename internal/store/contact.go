package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const contactColumns = `c.id, c.organization_id, COALESCE(c.first_name, '') AS first_name, COALESCE(c.last_name, '') AS last_name,
COALESCE(c.email, '') AS email, COALESCE(c.phone, '') AS phone, COALESCE(c.company, '') AS company,
COALESCE(c.job_title, '') AS job_title, COALESCE(c.location, '') AS location, COALESCE(c.status, '') AS status,
COALESCE(c.source, '') AS source, c.pipeline_stage_id, c.assigned_to, c.assigned_team_id, c.created_at, c.updated_at`

const sqlGetContactByID = `
SELECT ` + contactColumns + `
FROM contacts c
WHERE c.id = $1 AND c.organization_id = $2
`

// GetContactByID retrieves a contact scoped to its organization
func (s *Store) GetContactByID(ctx context.Context, orgID, contactID uuid.UUID) (Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlGetContactByID, contactID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

const sqlGetContactsTemplateData = `
SELECT ` + contactColumns + `,
       COALESCE(ps.name, '') AS pipeline_stage_name,
       COALESCE(u.full_name, '') AS assigned_user_name,
       COALESCE(u.email, '') AS assigned_user_email,
       COALESCE((
           SELECT jsonb_object_agg(cf.name, v.value)
           FROM contact_custom_field_values v
           JOIN custom_fields cf ON cf.id = v.custom_field_id
           WHERE v.contact_id = c.id
       ), '{}'::jsonb) AS custom_fields
FROM contacts c
LEFT JOIN pipeline_stages ps ON ps.id = c.pipeline_stage_id
LEFT JOIN users u ON u.id = c.assigned_to
WHERE c.id = ANY($1::uuid[])
`

// GetContactsTemplateData loads contacts with stage, assignee and custom fields in one query
func (s *Store) GetContactsTemplateData(ctx context.Context, contactIDs []uuid.UUID) (map[uuid.UUID]ContactTemplateData, error) {
	result := make(map[uuid.UUID]ContactTemplateData, len(contactIDs))
	if len(contactIDs) == 0 {
		return result, nil
	}
	var rows []ContactTemplateData
	if err := s.db.SelectContext(ctx, &rows, sqlGetContactsTemplateData, pq.Array(uuidStrings(contactIDs))); err != nil {
		return nil, fmt.Errorf("failed to get contacts template data: %w", err)
	}
	for _, r := range rows {
		result[r.ID] = r
	}
	return result, nil
}

const sqlGetCustomFieldValues = `
SELECT cf.id AS field_id, cf.name AS field_name, COALESCE(v.value, '') AS value
FROM contact_custom_field_values v
JOIN custom_fields cf ON cf.id = v.custom_field_id
WHERE v.contact_id = $1
`

// GetCustomFieldValues returns all custom field values of a contact
func (s *Store) GetCustomFieldValues(ctx context.Context, contactID uuid.UUID) ([]CustomFieldValue, error) {
	var values []CustomFieldValue
	if err := s.db.SelectContext(ctx, &values, sqlGetCustomFieldValues, contactID); err != nil {
		return nil, fmt.Errorf("failed to get custom field values: %w", err)
	}
	return values, nil
}

const sqlGetPipelineStageByID = `
SELECT id, name FROM pipeline_stages WHERE id = $1
`

// GetPipelineStageByID retrieves a pipeline stage
func (s *Store) GetPipelineStageByID(ctx context.Context, stageID uuid.UUID) (PipelineStage, error) {
	var stage PipelineStage
	err := s.db.GetContext(ctx, &stage, sqlGetPipelineStageByID, stageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PipelineStage{}, ErrNotFound
		}
		return PipelineStage{}, fmt.Errorf("failed to get pipeline stage: %w", err)
	}
	return stage, nil
}

const sqlGetUserByID = `
SELECT id, COALESCE(full_name, '') AS full_name, email FROM users WHERE id = $1
`

// GetUserByID retrieves a CRM user
func (s *Store) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

const sqlGetDispositionByID = `
SELECT id, name, COALESCE(description, '') AS description FROM dispositions WHERE id = $1
`

// GetDispositionByID retrieves a call disposition
func (s *Store) GetDispositionByID(ctx context.Context, dispositionID uuid.UUID) (Disposition, error) {
	var disposition Disposition
	err := s.db.GetContext(ctx, &disposition, sqlGetDispositionByID, dispositionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Disposition{}, ErrNotFound
		}
		return Disposition{}, fmt.Errorf("failed to get disposition: %w", err)
	}
	return disposition, nil
}

const sqlCountActivitiesSince = `
SELECT COUNT(*)
FROM activities
WHERE contact_id = $1 AND ($2 = '' OR activity_type = $2) AND created_at >= $3
`

// CountActivitiesSince counts a contact's activities of a type (empty = any) since a point in time
func (s *Store) CountActivitiesSince(ctx context.Context, contactID uuid.UUID, activityType string, since time.Time) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountActivitiesSince, contactID, activityType, since); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

const sqlListInactiveContacts = `
SELECT ` + contactColumns + `
FROM contacts c
WHERE c.organization_id = $1
  AND c.updated_at <= $2
  AND COALESCE(c.email, '') <> ''
  AND NOT EXISTS (
      SELECT 1 FROM automation_executions e
      WHERE e.rule_id = $3 AND e.contact_id = c.id AND e.created_at >= c.updated_at
  )
ORDER BY c.updated_at ASC
LIMIT $4
`

// ListInactiveContacts returns contacts untouched since cutoff that the rule has not fired for since
func (s *Store) ListInactiveContacts(ctx context.Context, orgID uuid.UUID, cutoff time.Time, ruleID uuid.UUID, limit int) ([]Contact, error) {
	var contacts []Contact
	err := s.db.SelectContext(ctx, &contacts, sqlListInactiveContacts, orgID, cutoff, ruleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inactive contacts: %w", err)
	}
	return contacts, nil
}

const sqlListContactsByCreatedDate = `
SELECT ` + contactColumns + `
FROM contacts c
WHERE c.organization_id = $1
  AND (c.created_at::date + $2::int) = $3::date
  AND COALESCE(c.email, '') <> ''
  AND NOT EXISTS (
      SELECT 1 FROM automation_executions e
      WHERE e.rule_id = $4 AND e.contact_id = c.id AND e.created_at::date = $3::date
  )
ORDER BY c.created_at ASC
LIMIT $5
`

const sqlListContactsByCustomDate = `
SELECT ` + contactColumns + `
FROM contacts c
JOIN contact_custom_field_values v ON v.contact_id = c.id
JOIN custom_fields cf ON cf.id = v.custom_field_id AND cf.name = $6
WHERE c.organization_id = $1
  AND (CASE WHEN v.value ~ '^\d{4}-\d{2}-\d{2}' THEN substring(v.value from 1 for 10)::date END + $2::int) = $3::date
  AND COALESCE(c.email, '') <> ''
  AND NOT EXISTS (
      SELECT 1 FROM automation_executions e
      WHERE e.rule_id = $4 AND e.contact_id = c.id AND e.created_at::date = $3::date
  )
ORDER BY c.created_at ASC
LIMIT $5
`

// ListContactsByDateField returns contacts whose date field plus offsetDays falls on day (YYYY-MM-DD)
// and that the rule has not fired for on that day. dateField is "created_at" or a custom field name.
func (s *Store) ListContactsByDateField(ctx context.Context, orgID, ruleID uuid.UUID, dateField string, offsetDays int, day string, limit int) ([]Contact, error) {
	var contacts []Contact
	var err error
	if dateField == "" || dateField == "created_at" {
		err = s.db.SelectContext(ctx, &contacts, sqlListContactsByCreatedDate, orgID, offsetDays, day, ruleID, limit)
	} else {
		err = s.db.SelectContext(ctx, &contacts, sqlListContactsByCustomDate, orgID, offsetDays, day, ruleID, limit, dateField)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts by date field: %w", err)
	}
	return contacts, nil
}
