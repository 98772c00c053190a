package apierrors

import (
	"errors"
	"strings"

	automationProcessor "crm-automation/internal/automation/processor"
	templateProcessor "crm-automation/internal/emailtemplates/processor"
	"crm-automation/internal/store"
)

// MapError converts processor errors to APIErrors.
// An APIError is returned as-is; unknown errors become a sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// automation processor errors
	case errors.Is(err, automationProcessor.ErrRuleNotFound):
		return NotFound(CodeRuleNotFound, "Automation rule not found")

	case errors.Is(err, automationProcessor.ErrTemplateNotFound):
		return NotFound(CodeTemplateNotFound, "Email template not found")

	case errors.Is(err, automationProcessor.ErrContactNotFound):
		return NotFound(CodeContactNotFound, "Contact not found")

	case errors.Is(err, automationProcessor.ErrExecutionNotFound):
		return NotFound(CodeExecutionNotFound, "Automation execution not found")

	case errors.Is(err, automationProcessor.ErrInvalidTriggerType):
		return BadRequest(CodeInvalidTriggerType, "Invalid trigger type")

	case errors.Is(err, automationProcessor.ErrInvalidTriggerConfig):
		return BadRequest(CodeInvalidTriggerConfig, err.Error())

	case errors.Is(err, automationProcessor.ErrInvalidConditions):
		return BadRequest(CodeInvalidConditions, err.Error())

	case errors.Is(err, automationProcessor.ErrInvalidConditionLogic):
		return BadRequest(CodeInvalidConditions, "Condition logic must be AND or OR")

	case errors.Is(err, automationProcessor.ErrInvalidRule):
		return BadRequest(CodeInvalidRule, err.Error())

	case errors.Is(err, automationProcessor.ErrInvalidTestMode):
		return BadRequest(CodeInvalidTestMode, "Test mode must be preview or send")

	case errors.Is(err, automationProcessor.ErrNoEmail):
		return BadRequest(CodeNoEmail, "Contact has no email address")

	case errors.Is(err, automationProcessor.ErrInvalidSignature):
		return BadRequest(CodeInvalidSignature, "Invalid tracking link")

	case errors.Is(err, automationProcessor.ErrInvalidToken):
		return BadRequest(CodeInvalidToken, "Invalid or expired unsubscribe link")

	// email template processor errors
	case errors.Is(err, templateProcessor.ErrTemplateNotFound):
		return NotFound(CodeTemplateNotFound, "Email template not found")

	case errors.Is(err, templateProcessor.ErrContactNotFound):
		return NotFound(CodeContactNotFound, "Contact not found")

	case errors.Is(err, templateProcessor.ErrInvalidTemplateContent):
		return BadRequest(CodeInvalidTemplate, "Email template subject and body are required")

	case errors.Is(err, templateProcessor.ErrTestEmailFailed):
		return ServiceUnavailable(CodeEmailServiceError, "Email service is temporarily unavailable. Please try again later.", err)

	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError identifies provider failures by message
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "resend") || strings.Contains(errMsg, "error sending email") {
		return ServiceUnavailable(
			CodeEmailServiceError,
			"Email service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	if strings.Contains(errMsg, "kafka") || strings.Contains(errMsg, "worker pool") {
		return ServiceUnavailable(
			CodeEventBusError,
			"Event processing is temporarily unavailable. Please try again later.",
			err,
		)
	}

	return InternalError(err)
}
