package apierrors

import (
	"fmt"
	"net/http"
)

// Error codes returned to API clients
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeRuleNotFound         = "RULE_NOT_FOUND"
	CodeTemplateNotFound     = "TEMPLATE_NOT_FOUND"
	CodeContactNotFound      = "CONTACT_NOT_FOUND"
	CodeExecutionNotFound    = "EXECUTION_NOT_FOUND"
	CodeInvalidTriggerType   = "INVALID_TRIGGER_TYPE"
	CodeInvalidTriggerConfig = "INVALID_TRIGGER_CONFIG"
	CodeInvalidConditions    = "INVALID_CONDITIONS"
	CodeInvalidRule          = "INVALID_RULE"
	CodeInvalidTestMode      = "INVALID_TEST_MODE"
	CodeNoEmail              = "CONTACT_HAS_NO_EMAIL"
	CodeInvalidSignature     = "INVALID_SIGNATURE"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeInvalidTemplate      = "INVALID_TEMPLATE"
	CodeEmailServiceError    = "EMAIL_SERVICE_ERROR"
	CodeEventBusError        = "EVENT_BUS_ERROR"
)

// APIError is an error with the HTTP status and client-facing code it maps to.
// Err holds the internal cause and is never sent to clients.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// ServiceUnavailable is used when a downstream provider failed
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError is a sanitized 500
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
