package validator

import (
	"fmt"
	"strings"
)

// Kind identifies one of the fixed rule behaviours.
type Kind int

const (
	KindUnknown Kind = iota
	KindRequired
	KindNotEmpty
	KindExactLength
	KindMinimumLength
	KindMaximumLength
	KindLengthInterval
	KindMatchesPattern
	KindEmailWithMX
	KindURLWithScheme
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindRequired:       "required",
	KindNotEmpty:       "not_empty",
	KindExactLength:    "exact_length",
	KindMinimumLength:  "min_length",
	KindMaximumLength:  "max_length",
	KindLengthInterval: "length_interval",
	KindMatchesPattern: "matches_pattern",
	KindEmailWithMX:    "email_mx",
	KindURLWithScheme:  "url",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// TranslationKey is the message key callers can use to localize violations
// of this kind, e.g. "validation.exact_length".
func (k Kind) TranslationKey() string {
	return "validation." + k.String()
}

// ParseKind maps a kind name such as "length_interval" back to its Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k := KindRequired; int(k) < len(kindNames); k++ {
		if kindNames[k] == n {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
