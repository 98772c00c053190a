package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const templateColumns = `id, organization_id, name, subject, html_body, is_active, created_at, updated_at`

// CreateEmailTemplateParams represents parameters for creating an email template
type CreateEmailTemplateParams struct {
	OrganizationID uuid.UUID
	Name           string
	Subject        string
	HTMLBody       string
	IsActive       bool
}

const sqlCreateEmailTemplate = `
INSERT INTO email_templates (organization_id, name, subject, html_body, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + templateColumns

// CreateEmailTemplate creates a new email template
func (s *Store) CreateEmailTemplate(ctx context.Context, params CreateEmailTemplateParams) (EmailTemplate, error) {
	var template EmailTemplate
	err := s.db.GetContext(ctx, &template, sqlCreateEmailTemplate,
		params.OrganizationID,
		params.Name,
		params.Subject,
		params.HTMLBody,
		params.IsActive)
	if err != nil {
		return EmailTemplate{}, fmt.Errorf("failed to create email template: %w", err)
	}
	return template, nil
}

const sqlGetEmailTemplateByID = `
SELECT ` + templateColumns + `
FROM email_templates
WHERE id = $1 AND organization_id = $2
`

// GetEmailTemplateByID retrieves an organization's email template
func (s *Store) GetEmailTemplateByID(ctx context.Context, orgID, templateID uuid.UUID) (EmailTemplate, error) {
	var template EmailTemplate
	err := s.db.GetContext(ctx, &template, sqlGetEmailTemplateByID, templateID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmailTemplate{}, ErrNotFound
		}
		return EmailTemplate{}, fmt.Errorf("failed to get email template: %w", err)
	}
	return template, nil
}

const sqlGetEmailTemplatesByIDs = `
SELECT ` + templateColumns + `
FROM email_templates
WHERE id = ANY($1::uuid[]) AND is_active = TRUE
`

// GetEmailTemplatesByIDs loads active templates in bulk, keyed by id
func (s *Store) GetEmailTemplatesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]EmailTemplate, error) {
	result := make(map[uuid.UUID]EmailTemplate, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var templates []EmailTemplate
	if err := s.db.SelectContext(ctx, &templates, sqlGetEmailTemplatesByIDs, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("failed to get email templates: %w", err)
	}
	for _, t := range templates {
		result[t.ID] = t
	}
	return result, nil
}

const sqlGetEmailTemplatesByOrganization = `
SELECT ` + templateColumns + `
FROM email_templates
WHERE organization_id = $1
ORDER BY created_at DESC
`

// GetEmailTemplatesByOrganization lists an organization's templates
func (s *Store) GetEmailTemplatesByOrganization(ctx context.Context, orgID uuid.UUID) ([]EmailTemplate, error) {
	templates := []EmailTemplate{}
	if err := s.db.SelectContext(ctx, &templates, sqlGetEmailTemplatesByOrganization, orgID); err != nil {
		return nil, fmt.Errorf("failed to get email templates: %w", err)
	}
	return templates, nil
}

// UpdateEmailTemplateParams represents parameters for updating an email template
type UpdateEmailTemplateParams struct {
	Name     *string
	Subject  *string
	HTMLBody *string
	IsActive *bool
}

const sqlUpdateEmailTemplate = `
UPDATE email_templates
SET name = COALESCE($3, name),
    subject = COALESCE($4, subject),
    html_body = COALESCE($5, html_body),
    is_active = COALESCE($6, is_active),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND organization_id = $2
RETURNING ` + templateColumns

// UpdateEmailTemplate updates an email template
func (s *Store) UpdateEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID, params UpdateEmailTemplateParams) (EmailTemplate, error) {
	var template EmailTemplate
	err := s.db.GetContext(ctx, &template, sqlUpdateEmailTemplate,
		templateID,
		orgID,
		params.Name,
		params.Subject,
		params.HTMLBody,
		params.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmailTemplate{}, ErrNotFound
		}
		return EmailTemplate{}, fmt.Errorf("failed to update email template: %w", err)
	}
	return template, nil
}

const sqlDeleteEmailTemplate = `
DELETE FROM email_templates
WHERE id = $1 AND organization_id = $2
`

// DeleteEmailTemplate deletes an email template
func (s *Store) DeleteEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteEmailTemplate, templateID, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete email template: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
