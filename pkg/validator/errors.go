package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration marks programmer and schema mistakes. Every error returned
// by rule constructors, schema construction and Engine.Validate matches it,
// except context cancellation.
var ErrConfiguration = errors.New("validator: configuration error")

var (
	// ErrInvalidField is returned when a rule or binding has a blank field name.
	ErrInvalidField = errors.New("field name must not be blank")

	// ErrInvalidParameter is returned when a rule parameter violates its bounds.
	ErrInvalidParameter = errors.New("invalid rule parameter")

	// ErrInvalidPattern is returned when a pattern is blank or does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidSeverity is returned for severities outside the defined levels.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrUnknownKind is returned for zero-value rules and unknown kind names.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrFieldMismatch is returned when a binding receives a rule for another field.
	ErrFieldMismatch = errors.New("rule belongs to a different field")

	// ErrDuplicateField is returned when a schema binds the same field twice.
	ErrDuplicateField = errors.New("field is bound more than once")

	// ErrFieldNotInRecord is returned when a bound field is absent from the record.
	ErrFieldNotInRecord = errors.New("field not present in record")

	// ErrTypeMismatch is returned when a string rule receives a non-string value.
	ErrTypeMismatch = errors.New("unsupported value type")

	// ErrNilRecord is returned when Validate is called without a record.
	ErrNilRecord = errors.New("record is nil")
)

// ConfigError describes a configuration mistake. It matches both
// ErrConfiguration and its specific cause with errors.Is.
type ConfigError struct {
	Kind  Kind   // rule kind, KindUnknown when not rule specific
	Field string // field name, when known
	Param string // offending parameter, when known
	Value any    // offending value, when Param is set
	Err   error  // specific cause, wraps one of the sentinels above
}

func (e *ConfigError) Error() string {
	parts := []string{"validator"}
	if e.Kind != KindUnknown {
		parts = append(parts, e.Kind.String()+" rule")
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %q", e.Field))
	}
	if e.Param != "" {
		parts = append(parts, fmt.Sprintf("%s=%v", e.Param, e.Value))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}
