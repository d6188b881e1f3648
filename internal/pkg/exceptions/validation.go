package exceptions

import (
	"errors"
	"mrchemist-admin-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	// ErrDraftValidation blocks a submit and reports every offending field of the draft.
	ErrDraftValidation = func(fieldErrors []FieldError) *CustomError {
		customErr := BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientValidationFailed, constvars.ErrDevValidationFailed)
		customErr.FieldErrors = fieldErrors
		return customErr
	}
)

// CollectFieldErrors turns validator errors into path keyed messages. The root struct name is
// dropped from the namespace so paths read like the submitted JSON.
func CollectFieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, validationErr := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   trimRootNamespace(validationErr.Namespace()),
			Message: formatMessage(validationErr),
		})
	}
	return fieldErrors
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		return firstErr.Field() + " " + formatMessage(firstErr)
	}
	return constvars.ErrDevInvalidInput
}

func formatMessage(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}

	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
		}
	}
	return customMessage
}

func trimRootNamespace(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
