package validator

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// evaluate runs one rule against value. It reports a violation, an optional
// degradation warning, or an error that aborts the run.
func (e *Engine) evaluate(ctx context.Context, r Rule, value any, opts RunOptions) (bool, *Warning, error) {
	if r.kind == KindRequired {
		return isAbsent(value), nil, nil
	}

	s, ok := stringValue(value)
	if !ok {
		return false, nil, &ConfigError{
			Kind:  r.kind,
			Field: r.field,
			Param: "value",
			Value: fmt.Sprintf("%T", value),
			Err:   ErrTypeMismatch,
		}
	}

	switch r.kind {
	case KindNotEmpty:
		return strings.TrimSpace(s) == "", nil, nil
	case KindExactLength:
		return utf8.RuneCountInString(s) != r.length, nil, nil
	case KindMinimumLength:
		return utf8.RuneCountInString(s) < r.minLength, nil, nil
	case KindMaximumLength:
		return utf8.RuneCountInString(s) > r.maxLength, nil, nil
	case KindLengthInterval:
		n := utf8.RuneCountInString(s)
		return n < r.minLength || n > r.maxLength, nil, nil
	case KindMatchesPattern:
		return !r.re.MatchString(s), nil, nil
	case KindEmailWithMX:
		return e.checkEmail(ctx, r, s, opts)
	case KindURLWithScheme:
		return !isURL(s, r.requireHTTP), nil, nil
	default:
		return false, nil, &ConfigError{Kind: r.kind, Field: r.field, Err: ErrUnknownKind}
	}
}

func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	return reflect.ValueOf(value).IsZero()
}

// stringValue accepts strings, named string types and pointers to them.
// nil and nil pointers read as the empty string.
func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", true
		}
		return *v, true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", true
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
