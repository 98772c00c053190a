package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"crm-automation/internal/automation/templating"
	"crm-automation/internal/email"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// EmailTemplateStore defines the database operations required by EmailTemplateProcessor
type EmailTemplateStore interface {
	CreateEmailTemplate(ctx context.Context, params store.CreateEmailTemplateParams) (store.EmailTemplate, error)
	GetEmailTemplateByID(ctx context.Context, orgID, templateID uuid.UUID) (store.EmailTemplate, error)
	GetEmailTemplatesByOrganization(ctx context.Context, orgID uuid.UUID) ([]store.EmailTemplate, error)
	UpdateEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID, params store.UpdateEmailTemplateParams) (store.EmailTemplate, error)
	DeleteEmailTemplate(ctx context.Context, orgID, templateID uuid.UUID) error
	GetContactByID(ctx context.Context, orgID, contactID uuid.UUID) (store.Contact, error)
}

// Personalizer resolves template tokens against a contact
type Personalizer interface {
	ResolveEmail(ctx context.Context, in templating.Input, subject, htmlBody string) (string, string)
}

// EmailService defines the email operations required by EmailTemplateProcessor
type EmailService interface {
	Send(ctx context.Context, msg email.Message) error
}
