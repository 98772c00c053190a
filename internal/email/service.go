package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	mailclient "crm-automation/internal/clients/mail"
	"crm-automation/internal/observability"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmailAddress = errors.New("invalid email address")
	ErrSendingEmail        = errors.New("error sending email")
	ErrEmptyContent        = errors.New("email subject or body is empty")
)

// Message is one automation email ready for delivery
type Message struct {
	To             string
	Subject        string
	HTML           string
	OrganizationID uuid.UUID
	ContactID      uuid.UUID
	ExecutionID    uuid.UUID
	RuleID         uuid.UUID
	// UnsubscribeURL, when set, is advertised through List-Unsubscribe headers
	UnsubscribeURL string
}

// Service delivers automation emails through the configured transport
type Service struct {
	transport     Transport
	logger        *observability.Logger
	defaultSender string
}

// New creates a new email delivery Service
func New(transport Transport, defaultSender string, logger *observability.Logger) *Service {
	return &Service{
		transport:     transport,
		logger:        logger,
		defaultSender: defaultSender,
	}
}

// Send delivers msg. Any error is a failed delivery.
func (s *Service) Send(ctx context.Context, msg Message) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "execution_id", Value: msg.ExecutionID},
		observability.Field{Key: "contact_id", Value: msg.ContactID},
	)

	to := strings.TrimSpace(msg.To)
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEmailAddress, to)
	}
	if strings.TrimSpace(msg.Subject) == "" || strings.TrimSpace(msg.HTML) == "" {
		return ErrEmptyContent
	}

	out := mailclient.Email{
		From:    s.defaultSender,
		To:      to,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Headers: listUnsubscribeHeaders(msg.UnsubscribeURL),
		Tags:    map[string]string{"category": "automation"},
	}
	// tag values are restricted to ASCII letters, digits, underscores and dashes
	if msg.ExecutionID != uuid.Nil {
		out.Tags["execution_id"] = msg.ExecutionID.String()
	}
	if msg.RuleID != uuid.Nil {
		out.Tags["rule_id"] = msg.RuleID.String()
	}

	messageID, err := s.transport.SendEmail(ctx, out)
	if err != nil {
		s.logger.Error(ctx, "failed to deliver automation email", err)
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "provider_message_id", Value: messageID})
	s.logger.Info(ctx, "automation email delivered")
	return nil
}

func listUnsubscribeHeaders(unsubscribeURL string) map[string]string {
	if unsubscribeURL == "" {
		return nil
	}
	return map[string]string{
		"List-Unsubscribe":      "<" + unsubscribeURL + ">",
		"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
	}
}
