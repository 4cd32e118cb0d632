// Package val provides a structured validation error shape
// (ValidationError) for the one place this client needs struct-tag
// validation: Config. Server-side request-binding reflection helpers
// (path/query/header tag parsing) have no request to bind against here
// and are not carried — see DESIGN.md.
package val

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationFieldError represents a single field validation failure.
type ValidationFieldError struct {
	Field   string
	Message string
	Value   any
}

// ValidationError is a collection of field validation failures.
type ValidationError struct {
	Errors []ValidationFieldError
}

func (ve *ValidationError) Error() string {
	if ve == nil || len(ve.Errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}

	return strings.Join(messages, "; ")
}

// HasErrors reports whether any field failed validation.
func (ve *ValidationError) HasErrors() bool { return ve != nil && len(ve.Errors) > 0 }

var instance = validator.New(validator.WithRequiredStructEnabled())

// Validate runs go-playground/validator struct-tag validation against v
// and returns a *ValidationError (nil if v is valid).
func Validate(v any) *ValidationError {
	err := instance.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Errors: []ValidationFieldError{{Message: err.Error()}}}
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, ValidationFieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			Value:   fe.Value(),
		})
	}

	return out
}
