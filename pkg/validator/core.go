package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ValidationError is one rule violation for one field.
type ValidationError struct {
	Field          string
	Rule           Kind
	Severity       Severity
	Message        string
	SuggestedValue string
	TranslationKey string
}

// ValidationErrors is an ordered collection of violations.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Field == field {
			errs = append(errs, err)
		}
	}
	return errs
}

// Fields returns the distinct field names in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// AtLeast returns the violations whose severity is min or higher.
func (ve ValidationErrors) AtLeast(min Severity) ValidationErrors {
	var out ValidationErrors
	for _, err := range ve {
		if err.Severity >= min {
			out = append(out, err)
		}
	}
	return out
}

// MaxSeverity returns the highest severity present, false when empty.
func (ve ValidationErrors) MaxSeverity() (Severity, bool) {
	if len(ve) == 0 {
		return 0, false
	}
	return slices.MaxFunc(ve, func(a, b ValidationError) int {
		return int(a.Severity) - int(b.Severity)
	}).Severity, true
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// IsConfigError reports whether err stems from a configuration mistake.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
