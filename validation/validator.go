package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kdemir/pipekit/errors"
)

// dns1123Label matches lowercase RFC 1123 labels, the naming rule for
// pipelines, tasks, params and workspaces.
var dns1123Label = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

const maxNameLength = 63

// Validator collects validation errors.
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
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// AddAppError folds an AppError into the collected field errors.
func (v *Validator) AddAppError(field string, err *errors.AppError) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: err.Message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Name checks that a value is a valid resource name (lowercase RFC 1123 label).
func (v *Validator) Name(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
		return v
	}
	if len(value) > maxNameLength {
		v.AddError(field, fmt.Sprintf("must be %d characters or less", maxNameLength))
		return v
	}
	if !dns1123Label.MatchString(value) {
		v.AddError(field, "must consist of lowercase alphanumeric characters or '-', and start and end with an alphanumeric character")
	}
	return v
}

// Unique checks that a value has not been seen before in the given set,
// recording it as seen either way.
func (v *Validator) Unique(field, value string, seen map[string]bool) *Validator {
	if seen[value] {
		v.AddError(field, fmt.Sprintf("%q is declared more than once", value))
	}
	seen[value] = true
	return v
}

// OneOf checks that a value is among the allowed choices. Empty values pass;
// combine with Required when the field is mandatory.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of %v (got: %s)", allowed, value))
	return v
}

// MaxLength checks if a string is within max length.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if len(value) > maxLen {
		v.AddError(field, fmt.Sprintf("must be %d characters or less", maxLen))
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Pattern checks if a string matches a regex pattern.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	matched, err := regexp.MatchString(pattern, value)
	if err != nil || !matched {
		v.AddError(field, fmt.Sprintf("must match pattern %s", pattern))
	}
	return v
}
