package apierrors

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report request fields by their JSON names (contact_id, send_delay_minutes)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// ValidationError builds a 400 listing every failed field
func ValidationError(validationErrs validator.ValidationErrors) *APIError {
	if len(validationErrs) == 0 {
		return BadRequest(CodeInvalidInput, "Invalid request")
	}
	if len(validationErrs) == 1 {
		return BadRequest(CodeInvalidInput, fieldMessage(validationErrs[0]))
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldMessage(fieldErr))
	}
	return BadRequest(CodeInvalidInput, "Validation failed: "+strings.Join(messages, "; "))
}

// tagMessages holds the message for each validation tag; %[1]s is the field, %[2]s the param.
var tagMessages = map[string]string{
	"required": "%[1]s is required",
	"email":    "%[1]s must be a valid email address",
	"uuid":     "%[1]s must be a valid UUID",
	"url":      "%[1]s must be a valid URL",
	"max":      "%[1]s must be at most %[2]s characters",
	"min":      "%[1]s must be at least %[2]s characters",
	"gt":       "%[1]s must be greater than %[2]s",
	"gte":      "%[1]s must be greater than or equal to %[2]s",
	"lt":       "%[1]s must be less than %[2]s",
	"lte":      "%[1]s must be less than or equal to %[2]s",
	"oneof":    "%[1]s must be one of: %[2]s",
}

func fieldMessage(fieldErr validator.FieldError) string {
	format, ok := tagMessages[fieldErr.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation (%s)", fieldErr.Field(), fieldErr.Tag())
	}
	if !strings.Contains(format, "%[2]s") {
		return fmt.Sprintf(format, fieldErr.Field())
	}
	return fmt.Sprintf(format, fieldErr.Field(), fieldErr.Param())
}
