package validation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/kbukum/seqkit/errors"
)

// Validator accumulates problems with command arguments and flags so that
// a command can report all of them at once. Methods chain:
//
//	err := validation.New().
//		Min("top", top, 1).
//		OneOf("by", by, []string{"length", "initial"}).
//		Validate()
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the recorded failures in the order they were found.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns nil when every check passed. Otherwise it returns an
// INVALID_ARGUMENT *errors.AppError listing each field, with the
// failures under the "fields" detail.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	messages := lo.Map(v.errors, func(e FieldError, _ int) string {
		return e.Field + ": " + e.Message
	})
	return errors.New(errors.ErrCodeInvalidArgument, strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Required fails on an empty or blank value.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Range fails unless minVal <= value <= maxVal.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be between %d and %d, got %d", minVal, maxVal, value))
	}
	return v
}

// Min fails when value is below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d, got %d", minVal, value))
	}
	return v
}

// OneOf fails when a non-empty value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value != "" && !lo.Contains(allowed, value) {
		v.AddError(field, fmt.Sprintf("must be one of: %s, got %q", strings.Join(allowed, ", "), value))
	}
	return v
}

// Custom records message for field when ok is false.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}
