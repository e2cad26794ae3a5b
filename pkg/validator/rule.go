package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is an immutable, validated rule definition bound to one field.
// Rules are created through the constructors below; the zero value is
// rejected by NewFieldBinding.
type Rule struct {
	kind           Kind
	field          string
	severity       Severity
	message        string
	suggestedValue string
	enabled        bool

	length      int
	minLength   int
	maxLength   int
	pattern     string
	re          *regexp.Regexp
	checkMX     bool
	requireHTTP bool
}

// RuleOption customizes the shared attributes of a rule.
type RuleOption func(*Rule)

// WithSeverity overrides the default SeverityError.
func WithSeverity(s Severity) RuleOption {
	return func(r *Rule) {
		r.severity = s
	}
}

// WithMessage overrides the default message. A blank message keeps the default.
func WithMessage(msg string) RuleOption {
	return func(r *Rule) {
		r.message = msg
	}
}

// WithSuggestedValue attaches a remediation hint that is copied into violations.
func WithSuggestedValue(v string) RuleOption {
	return func(r *Rule) {
		r.suggestedValue = v
	}
}

// WithEnabled toggles whether the engine evaluates the rule.
func WithEnabled(enabled bool) RuleOption {
	return func(r *Rule) {
		r.enabled = enabled
	}
}

// Disabled is shorthand for WithEnabled(false).
func Disabled() RuleOption {
	return WithEnabled(false)
}

// Required fails when the value is nil, a nil pointer, or the zero value of its type.
func Required(field string, opts ...RuleOption) (Rule, error) {
	return build(KindRequired, field, opts, nil)
}

// NotEmpty fails when the string value is empty or whitespace only.
func NotEmpty(field string, opts ...RuleOption) (Rule, error) {
	return build(KindNotEmpty, field, opts, nil)
}

// ExactLength fails unless the value has exactly n characters. n must be positive.
func ExactLength(field string, n int, opts ...RuleOption) (Rule, error) {
	return build(KindExactLength, field, opts, func(r *Rule) {
		r.length = n
	})
}

// MinimumLength fails when the value has fewer than n characters. n must be positive.
func MinimumLength(field string, n int, opts ...RuleOption) (Rule, error) {
	return build(KindMinimumLength, field, opts, func(r *Rule) {
		r.minLength = n
	})
}

// MaximumLength fails when the value has more than n characters. n must be positive.
func MaximumLength(field string, n int, opts ...RuleOption) (Rule, error) {
	return build(KindMaximumLength, field, opts, func(r *Rule) {
		r.maxLength = n
	})
}

// LengthInterval fails when the length falls outside [minLen, maxLen].
// minLen must be positive and maxLen must not be less than minLen.
func LengthInterval(field string, minLen, maxLen int, opts ...RuleOption) (Rule, error) {
	return build(KindLengthInterval, field, opts, func(r *Rule) {
		r.minLength = minLen
		r.maxLength = maxLen
	})
}

// MatchesPattern fails when pattern finds no match anywhere in the value.
// Anchor the pattern with ^ and $ to require a full match.
func MatchesPattern(field, pattern string, opts ...RuleOption) (Rule, error) {
	return build(KindMatchesPattern, field, opts, func(r *Rule) {
		r.pattern = pattern
	})
}

// EmailWithMX fails on malformed addresses and, when checkMX is set,
// on domains that have no mail exchanger.
func EmailWithMX(field string, checkMX bool, opts ...RuleOption) (Rule, error) {
	return build(KindEmailWithMX, field, opts, func(r *Rule) {
		r.checkMX = checkMX
	})
}

// URLWithScheme fails on malformed URLs and, when requireHTTP is set,
// on URLs whose scheme is not http or https.
func URLWithScheme(field string, requireHTTP bool, opts ...RuleOption) (Rule, error) {
	return build(KindURLWithScheme, field, opts, func(r *Rule) {
		r.requireHTTP = requireHTTP
	})
}

// Must panics if err is non-nil. Intended for package level schema definitions.
func Must(r Rule, err error) Rule {
	if err != nil {
		panic(err)
	}
	return r
}

func build(kind Kind, field string, opts []RuleOption, params func(*Rule)) (Rule, error) {
	r := Rule{
		kind:     kind,
		field:    field,
		severity: SeverityError,
		enabled:  true,
	}
	if params != nil {
		params(&r)
	}
	for _, opt := range opts {
		opt(&r)
	}

	if err := r.check(); err != nil {
		return Rule{}, err
	}
	if strings.TrimSpace(r.message) == "" {
		r.message = r.defaultMessage()
	}
	return r, nil
}

func (r *Rule) check() error {
	if strings.TrimSpace(r.field) == "" {
		return r.fail("", nil, ErrInvalidField)
	}
	if !r.severity.IsValid() {
		return r.fail("severity", int(r.severity), ErrInvalidSeverity)
	}

	switch r.kind {
	case KindRequired, KindNotEmpty, KindEmailWithMX, KindURLWithScheme:
	case KindExactLength:
		if r.length <= 0 {
			return r.fail("length", r.length, fmt.Errorf("%w: must be greater than zero", ErrInvalidParameter))
		}
	case KindMinimumLength:
		if r.minLength <= 0 {
			return r.fail("min", r.minLength, fmt.Errorf("%w: must be greater than zero", ErrInvalidParameter))
		}
	case KindMaximumLength:
		if r.maxLength <= 0 {
			return r.fail("max", r.maxLength, fmt.Errorf("%w: must be greater than zero", ErrInvalidParameter))
		}
	case KindLengthInterval:
		if r.minLength <= 0 {
			return r.fail("min", r.minLength, fmt.Errorf("%w: must be greater than zero", ErrInvalidParameter))
		}
		if r.maxLength < r.minLength {
			return r.fail("max", r.maxLength, fmt.Errorf("%w: must not be less than min %d", ErrInvalidParameter, r.minLength))
		}
	case KindMatchesPattern:
		if strings.TrimSpace(r.pattern) == "" {
			return r.fail("pattern", r.pattern, fmt.Errorf("%w: must not be blank", ErrInvalidPattern))
		}
		re, err := regexp.Compile(r.pattern)
		if err != nil {
			return r.fail("pattern", r.pattern, fmt.Errorf("%w: %w", ErrInvalidPattern, err))
		}
		r.re = re
	default:
		return r.fail("", nil, ErrUnknownKind)
	}
	return nil
}

func (r *Rule) fail(param string, value any, err error) error {
	return &ConfigError{Kind: r.kind, Field: r.field, Param: param, Value: value, Err: err}
}

func (r *Rule) defaultMessage() string {
	switch r.kind {
	case KindRequired:
		return fmt.Sprintf("%s is required and cannot be null or default value.", r.field)
	case KindNotEmpty:
		return fmt.Sprintf("%s must not be empty, or whitespace.", r.field)
	case KindExactLength:
		return fmt.Sprintf("%s field must be exactly %d characters long!", r.field, r.length)
	case KindMinimumLength:
		return fmt.Sprintf("%s field must be at least %d characters long.", r.field, r.minLength)
	case KindMaximumLength:
		return fmt.Sprintf("%s field must not exceed %d characters.", r.field, r.maxLength)
	case KindLengthInterval:
		return fmt.Sprintf("%s field length must be between %d and %d characters.", r.field, r.minLength, r.maxLength)
	case KindMatchesPattern:
		return fmt.Sprintf("%s must match the pattern: %s", r.field, r.pattern)
	case KindEmailWithMX:
		return fmt.Sprintf("%s must be a valid email address.", r.field)
	case KindURLWithScheme:
		return fmt.Sprintf("%s must be a valid URL.", r.field)
	default:
		return fmt.Sprintf("%s is invalid.", r.field)
	}
}

func (r Rule) Kind() Kind { return r.kind }
func (r Rule) Field() string { return r.field }
func (r Rule) Severity() Severity { return r.severity }
func (r Rule) Message() string { return r.message }
func (r Rule) SuggestedValue() string { return r.suggestedValue }
func (r Rule) Enabled() bool { return r.enabled }
func (r Rule) Pattern() string { return r.pattern }
func (r Rule) CheckMX() bool { return r.checkMX }
func (r Rule) RequireHTTPScheme() bool { return r.requireHTTP }

// Length reports the length parameters. For ExactLength min and max are equal.
func (r Rule) Length() (minLen, maxLen int) {
	if r.kind == KindExactLength {
		return r.length, r.length
	}
	return r.minLength, r.maxLength
}

func (r Rule) violation() ValidationError {
	return ValidationError{
		Field:          r.field,
		Rule:           r.kind,
		Severity:       r.severity,
		Message:        r.message,
		SuggestedValue: r.suggestedValue,
		TranslationKey: r.kind.TranslationKey(),
	}
}
