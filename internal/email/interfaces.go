package email

import (
	"context"

	"crm-automation/internal/clients/mail"
)

// Transport is the provider client behind the delivery service
type Transport interface {
	SendEmail(ctx context.Context, msg mail.Email) (string, error)
}
