package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=handler

import (
	"context"

	"crm-automation/internal/emailtemplates/processor"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// EmailTemplateProcessor defines the template operations the handler serves
type EmailTemplateProcessor interface {
	CreateEmailTemplate(ctx context.Context, orgID uuid.UUID, req processor.CreateEmailTemplateRequest) (store.EmailTemplate, error)
	GetEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID) (store.EmailTemplate, error)
	ListEmailTemplates(ctx context.Context, orgID uuid.UUID) ([]store.EmailTemplate, error)
	UpdateEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID, req processor.UpdateEmailTemplateRequest) (store.EmailTemplate, error)
	DeleteEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID) error
	PreviewEmailTemplate(ctx context.Context, orgID, templateID, contactID uuid.UUID, triggerData map[string]interface{}) (processor.RenderedTemplate, error)
	SendTestEmail(ctx context.Context, orgID, templateID uuid.UUID, req processor.SendTestEmailRequest) error
}
