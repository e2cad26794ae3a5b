package validator

import (
	"fmt"
	"slices"
)

// Reason explains why an MX check degraded to a pass.
type Reason int

const (
	ReasonTimeout Reason = iota + 1
	ReasonTransient
)

func (r Reason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonTransient:
		return "transient"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Warning records a check that could not be completed and was treated as
// passing. Warnings never affect IsValid.
type Warning struct {
	Field  string
	Rule   Kind
	Domain string
	Reason Reason
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s check for %q degraded (%s)", w.Field, w.Rule, w.Domain, w.Reason)
}

// Result is the outcome of one validation run. Violations are ordered by
// schema field order, then by rule order within the field.
type Result struct {
	runID     string
	threshold Severity
	errors    ValidationErrors
	warnings  []Warning
}

func (r Result) RunID() string { return r.runID }

// Threshold is the minimum severity that makes the result invalid.
func (r Result) Threshold() Severity { return r.threshold }

// Errors returns a copy of every violation, including those below the threshold.
func (r Result) Errors() ValidationErrors { return slices.Clone(r.errors) }

func (r Result) Warnings() []Warning { return slices.Clone(r.warnings) }

// Degraded reports whether any check was skipped because of a resolver failure.
func (r Result) Degraded() bool { return len(r.warnings) > 0 }

// IsValid reports whether no violation reaches the threshold.
func (r Result) IsValid() bool {
	for _, e := range r.errors {
		if e.Severity >= r.threshold {
			return false
		}
	}
	return true
}

// AtLeast returns the violations with severity min or higher.
func (r Result) AtLeast(min Severity) ValidationErrors {
	return r.errors.AtLeast(min)
}

func (r Result) MaxSeverity() (Severity, bool) {
	return r.errors.MaxSeverity()
}

// Err returns the violations that reach the threshold as an error, or nil
// when the result is valid.
func (r Result) Err() error {
	failing := r.errors.AtLeast(r.threshold)
	if len(failing) == 0 {
		return nil
	}
	return failing
}

// Equal compares violations only. Run identifiers, thresholds and warnings
// are ignored, so repeated runs over the same input compare equal.
func (r Result) Equal(other Result) bool {
	return slices.Equal(r.errors, other.errors)
}
