package processor

import (
	"context"
	"errors"
	"strings"

	"crm-automation/internal/automation/templating"
	"crm-automation/internal/email"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

var (
	ErrTemplateNotFound       = errors.New("email template not found")
	ErrContactNotFound        = errors.New("contact not found")
	ErrInvalidTemplateContent = errors.New("email template subject and body are required")
	ErrTestEmailFailed        = errors.New("failed to send test email")
)

type EmailTemplateProcessor struct {
	store        EmailTemplateStore
	personalizer Personalizer
	emailService EmailService
	logger       *observability.Logger
}

func New(store EmailTemplateStore, personalizer Personalizer, emailService EmailService, logger *observability.Logger) EmailTemplateProcessor {
	return EmailTemplateProcessor{
		store:        store,
		personalizer: personalizer,
		emailService: emailService,
		logger:       logger,
	}
}

// CreateEmailTemplateRequest represents a request to create an email template
type CreateEmailTemplateRequest struct {
	Name     string
	Subject  string
	HTMLBody string
	IsActive *bool
}

// CreateEmailTemplate creates a new email template for an organization
func (p *EmailTemplateProcessor) CreateEmailTemplate(ctx context.Context, orgID uuid.UUID, req CreateEmailTemplateRequest) (store.EmailTemplate, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "organization_id", Value: orgID.String()})

	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTMLBody) == "" {
		return store.EmailTemplate{}, ErrInvalidTemplateContent
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	emailTemplate, err := p.store.CreateEmailTemplate(ctx, store.CreateEmailTemplateParams{
		OrganizationID: orgID,
		Name:           req.Name,
		Subject:        req.Subject,
		HTMLBody:       req.HTMLBody,
		IsActive:       isActive,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create email template", err)
		return store.EmailTemplate{}, err
	}

	p.logger.Info(ctx, "email template created successfully")
	return emailTemplate, nil
}

// GetEmailTemplate retrieves an email template by ID
func (p *EmailTemplateProcessor) GetEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID) (store.EmailTemplate, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID.String()},
		observability.Field{Key: "template_id", Value: templateID.String()},
	)

	emailTemplate, err := p.store.GetEmailTemplateByID(ctx, orgID, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.EmailTemplate{}, ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to get email template", err)
		return store.EmailTemplate{}, err
	}

	return emailTemplate, nil
}

// ListEmailTemplates lists all email templates of an organization
func (p *EmailTemplateProcessor) ListEmailTemplates(ctx context.Context, orgID uuid.UUID) ([]store.EmailTemplate, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "organization_id", Value: orgID.String()})

	templates, err := p.store.GetEmailTemplatesByOrganization(ctx, orgID)
	if err != nil {
		p.logger.Error(ctx, "failed to list email templates", err)
		return nil, err
	}

	return templates, nil
}

// UpdateEmailTemplateRequest represents a request to update an email template
type UpdateEmailTemplateRequest struct {
	Name     *string
	Subject  *string
	HTMLBody *string
	IsActive *bool
}

// UpdateEmailTemplate updates an email template
func (p *EmailTemplateProcessor) UpdateEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID, req UpdateEmailTemplateRequest) (store.EmailTemplate, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID.String()},
		observability.Field{Key: "template_id", Value: templateID.String()},
	)

	if (req.Subject != nil && strings.TrimSpace(*req.Subject) == "") ||
		(req.HTMLBody != nil && strings.TrimSpace(*req.HTMLBody) == "") {
		return store.EmailTemplate{}, ErrInvalidTemplateContent
	}

	emailTemplate, err := p.store.UpdateEmailTemplate(ctx, orgID, templateID, store.UpdateEmailTemplateParams{
		Name:     req.Name,
		Subject:  req.Subject,
		HTMLBody: req.HTMLBody,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.EmailTemplate{}, ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to update email template", err)
		return store.EmailTemplate{}, err
	}

	p.logger.Info(ctx, "email template updated successfully")
	return emailTemplate, nil
}

// DeleteEmailTemplate deletes an email template
func (p *EmailTemplateProcessor) DeleteEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "organization_id", Value: orgID.String()},
		observability.Field{Key: "template_id", Value: templateID.String()},
	)

	if err := p.store.DeleteEmailTemplate(ctx, orgID, templateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to delete email template", err)
		return err
	}

	p.logger.Info(ctx, "email template deleted successfully")
	return nil
}

// RenderedTemplate is a template personalized for one contact
type RenderedTemplate struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// PreviewEmailTemplate renders a template against a contact without sending it
func (p *EmailTemplateProcessor) PreviewEmailTemplate(ctx context.Context, orgID, templateID, contactID uuid.UUID, triggerData map[string]interface{}) (RenderedTemplate, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "contact_id", Value: contactID.String()})

	emailTemplate, err := p.GetEmailTemplate(ctx, orgID, templateID)
	if err != nil {
		return RenderedTemplate{}, err
	}

	contact, err := p.store.GetContactByID(ctx, orgID, contactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RenderedTemplate{}, ErrContactNotFound
		}
		p.logger.Error(ctx, "failed to get contact", err)
		return RenderedTemplate{}, err
	}

	subject, body := p.personalizer.ResolveEmail(ctx, templating.Input{Contact: contact, TriggerData: triggerData},
		emailTemplate.Subject, emailTemplate.HTMLBody)
	return RenderedTemplate{Subject: subject, HTML: body}, nil
}

// SendTestEmailRequest represents a request to send a test email
type SendTestEmailRequest struct {
	RecipientEmail string
	ContactID      uuid.UUID
	TriggerData    map[string]interface{}
}

// SendTestEmail renders a template against a contact and sends it to RecipientEmail.
// No execution is recorded and no tracking is injected.
func (p *EmailTemplateProcessor) SendTestEmail(ctx context.Context, orgID, templateID uuid.UUID, req SendTestEmailRequest) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "recipient", Value: req.RecipientEmail})

	rendered, err := p.PreviewEmailTemplate(ctx, orgID, templateID, req.ContactID, req.TriggerData)
	if err != nil {
		return err
	}

	err = p.emailService.Send(ctx, email.Message{
		To:             req.RecipientEmail,
		Subject:        "[Test] " + rendered.Subject,
		HTML:           rendered.HTML,
		OrganizationID: orgID,
		ContactID:      req.ContactID,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to send test email", err)
		return ErrTestEmailFailed
	}

	p.logger.Info(ctx, "test email sent successfully")
	return nil
}
