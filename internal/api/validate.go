package api

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Request payloads are validated locally before any network call; a
// validation failure means no request was issued and no state changed.

var validate = validator.New()

var (
	pinRegex  = regexp.MustCompile(`^[0-9]{4}$`)
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePIN checks that a PIN is exactly four digits.
func ValidatePIN(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "PIN must be exactly 4 digits"}
	}
	return nil
}

// ValidateSlug checks the public family slug shape.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ValidationError{Field: "slug", Message: "slug is required"}
	}
	if !slugRegex.MatchString(slug) {
		return ValidationError{Field: "slug", Message: "slug may only contain lowercase letters, digits and dashes"}
	}
	return nil
}

// checkRequest runs struct-tag validation and converts the first failure
// into a ValidationError.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
	}
	return fmt.Errorf("validate request: %w", err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
