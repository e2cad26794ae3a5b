package validator_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiconsolutions/guardion/pkg/logger"
	"github.com/rubiconsolutions/guardion/pkg/mxresolver"
	"github.com/rubiconsolutions/guardion/pkg/validator"
)

func newEngine(opts ...validator.Option) *validator.Engine {
	base := []validator.Option{
		validator.WithLogger(logger.Discard()),
		validator.WithResolver(mxresolver.Static{
			"example.com": {Hosts: []string{"mx.example.com"}},
		}),
	}
	return validator.New(append(base, opts...)...)
}

func singleRule(t *testing.T, r validator.Rule) validator.Schema {
	t.Helper()
	b, err := validator.NewFieldBinding(r.Field(), r)
	require.NoError(t, err)
	s, err := validator.NewSchema(b)
	require.NoError(t, err)
	return s
}

type label string

func TestEngine_RuleSemantics(t *testing.T) {
	str := func(s string) *string { return &s }
	var nilString *string

	tests := []struct {
		name  string
		rule  validator.Rule
		value any
		valid bool
	}{
		{"required nil", validator.Must(validator.Required("f")), nil, false},
		{"required nil pointer", validator.Must(validator.Required("f")), nilString, false},
		{"required empty string", validator.Must(validator.Required("f")), "", false},
		{"required zero int", validator.Must(validator.Required("f")), 0, false},
		{"required nil slice", validator.Must(validator.Required("f")), []string(nil), false},
		{"required whitespace", validator.Must(validator.Required("f")), " ", true},
		{"required number", validator.Must(validator.Required("f")), 42, true},
		{"required pointer to empty", validator.Must(validator.Required("f")), str(""), true},
		{"required struct", validator.Must(validator.Required("f")), struct{ A int }{1}, true},

		{"not empty empty", validator.Must(validator.NotEmpty("f")), "", false},
		{"not empty whitespace", validator.Must(validator.NotEmpty("f")), " \t\n", false},
		{"not empty nil", validator.Must(validator.NotEmpty("f")), nil, false},
		{"not empty value", validator.Must(validator.NotEmpty("f")), " a ", true},
		{"not empty named type", validator.Must(validator.NotEmpty("f")), label("x"), true},
		{"not empty pointer", validator.Must(validator.NotEmpty("f")), str("x"), true},

		{"exact length match", validator.Must(validator.ExactLength("f", 5)), "abcde", true},
		{"exact length short", validator.Must(validator.ExactLength("f", 5)), "abcd", false},
		{"exact length long", validator.Must(validator.ExactLength("f", 5)), "abcdef", false},
		{"exact length runes", validator.Must(validator.ExactLength("f", 5)), "héllo", true},
		{"exact length nil", validator.Must(validator.ExactLength("f", 1)), nil, false},

		{"minimum boundary", validator.Must(validator.MinimumLength("f", 3)), "abc", true},
		{"minimum short", validator.Must(validator.MinimumLength("f", 3)), "ab", false},

		{"maximum boundary", validator.Must(validator.MaximumLength("f", 3)), "abc", true},
		{"maximum long", validator.Must(validator.MaximumLength("f", 3)), "abcd", false},
		{"maximum empty", validator.Must(validator.MaximumLength("f", 3)), "", true},
		{"maximum runes", validator.Must(validator.MaximumLength("f", 3)), "日本語", true},

		{"interval lower", validator.Must(validator.LengthInterval("f", 2, 4)), "ab", true},
		{"interval upper", validator.Must(validator.LengthInterval("f", 2, 4)), "abcd", true},
		{"interval below", validator.Must(validator.LengthInterval("f", 2, 4)), "a", false},
		{"interval above", validator.Must(validator.LengthInterval("f", 2, 4)), "abcde", false},

		{"pattern anchored rejects partial", validator.Must(validator.MatchesPattern("f", `^\d+$`)), "a123b", false},
		{"pattern unanchored finds substring", validator.Must(validator.MatchesPattern("f", `\d+`)), "a123b", true},
		{"pattern anchored full", validator.Must(validator.MatchesPattern("f", `^\d+$`)), "123", true},
		{"pattern empty input", validator.Must(validator.MatchesPattern("f", `^\d+$`)), "", false},

		{"email valid no mx", validator.Must(validator.EmailWithMX("f", false)), "user@nowhere.invalid", true},
		{"email missing at", validator.Must(validator.EmailWithMX("f", false)), "user.example.com", false},
		{"email missing local", validator.Must(validator.EmailWithMX("f", false)), "@example.com", false},
		{"email empty", validator.Must(validator.EmailWithMX("f", false)), "", false},
		{"email whitespace", validator.Must(validator.EmailWithMX("f", false)), "   ", false},
		{"email spaces inside", validator.Must(validator.EmailWithMX("f", false)), "us er@example.com", false},

		{"url https", validator.Must(validator.URLWithScheme("f", true)), "https://example.com/path?q=1", true},
		{"url http", validator.Must(validator.URLWithScheme("f", true)), "http://example.com", true},
		{"url ftp rejected", validator.Must(validator.URLWithScheme("f", true)), "ftp://example.com", false},
		{"url ftp allowed", validator.Must(validator.URLWithScheme("f", false)), "ftp://example.com", true},
		{"url relative", validator.Must(validator.URLWithScheme("f", false)), "/just/a/path", false},
		{"url garbage", validator.Must(validator.URLWithScheme("f", false)), "not a url", false},
		{"url empty", validator.Must(validator.URLWithScheme("f", true)), "", false},
		{"url missing host", validator.Must(validator.URLWithScheme("f", true)), "https://", false},
	}

	engine := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Validate(context.Background(), singleRule(t, tt.rule), validator.Map{"f": tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.IsValid())
			if !tt.valid {
				errs := result.Errors()
				require.Len(t, errs, 1)
				assert.Equal(t, tt.rule.Message(), errs[0].Message)
				assert.Equal(t, tt.rule.Kind(), errs[0].Rule)
			}
		})
	}
}

func TestEngine_ViolationDetails(t *testing.T) {
	rule, err := validator.ExactLength("Code", 4,
		validator.WithSeverity(validator.SeverityCritical),
		validator.WithMessage("code must have four digits"),
		validator.WithSuggestedValue("0000"),
	)
	require.NoError(t, err)
	schema := singleRule(t, rule)

	result, err := newEngine().Validate(context.Background(), schema, validator.Map{"Code": "12"})
	require.NoError(t, err)
	require.False(t, result.IsValid())

	assert.Equal(t, validator.ValidationErrors{{
		Field:          "Code",
		Rule:           validator.KindExactLength,
		Severity:       validator.SeverityCritical,
		Message:        "code must have four digits",
		SuggestedValue: "0000",
		TranslationKey: "validation.exact_length",
	}}, result.Errors())
	assert.NotEmpty(t, result.RunID())
	assert.Equal(t, validator.SeverityError, result.Threshold())

	var verrs validator.ValidationErrors
	require.ErrorAs(t, result.Err(), &verrs)
	assert.Len(t, verrs, 1)
}

func TestEngine_OrderFollowsSchemaThenRules(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("B").NotEmpty().MinimumLength(3).
		Field("A").Required().
		Field("C").MaximumLength(1).ExactLength(2).
		Build()
	require.NoError(t, err)

	result, err := newEngine().Validate(context.Background(), schema, validator.Map{
		"A": "",
		"B": "",
		"C": "xyz",
	})
	require.NoError(t, err)

	var got []string
	for _, e := range result.Errors() {
		got = append(got, e.Field+"/"+e.Rule.String())
	}
	assert.Equal(t, []string{
		"B/not_empty",
		"B/min_length",
		"A/required",
		"C/max_length",
		"C/exact_length",
	}, got)
}

func TestEngine_Threshold(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("Nickname").NotEmpty(validator.WithSeverity(validator.SeverityWarning)).
		Field("Bio").MaximumLength(5, validator.WithSeverity(validator.SeverityInfo)).
		Build()
	require.NoError(t, err)
	record := validator.Map{"Nickname": "", "Bio": "far too long"}

	engine := newEngine()

	result, err := engine.Validate(context.Background(), schema, record)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), "violations below the threshold do not invalidate")
	assert.Len(t, result.Errors(), 2)
	assert.NoError(t, result.Err())

	sev, ok := result.MaxSeverity()
	require.True(t, ok)
	assert.Equal(t, validator.SeverityWarning, sev)
	assert.Len(t, result.AtLeast(validator.SeverityWarning), 1)

	result, err = engine.Validate(context.Background(), schema, record, validator.WithThreshold(validator.SeverityWarning))
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Error(t, result.Err())

	result, err = engine.Validate(context.Background(), schema, record, validator.WithThreshold(validator.SeverityInfo))
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Len(t, validator.ExtractValidationErrors(result.Err()), 2)

	_, err = engine.Validate(context.Background(), schema, record, validator.WithThreshold(0))
	assert.ErrorIs(t, err, validator.ErrInvalidSeverity)
	assert.ErrorIs(t, err, validator.ErrConfiguration)
}

func TestEngine_DisabledRulesAreSkipped(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("Name").Required(validator.Disabled()).NotEmpty(validator.WithEnabled(false)).
		Build()
	require.NoError(t, err)

	result, err := newEngine().Validate(context.Background(), schema, validator.Map{"Name": ""})
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Errors())
}

func TestEngine_DisabledFieldsAreSkipped(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("Name").NotEmpty().
		Field("Legacy").Disabled().Required().NotEmpty().
		Field("Email").Disabled().EmailWithMX(true).
		Build()
	require.NoError(t, err)

	var lookups atomic.Int32
	engine := newEngine(validator.WithResolver(mxresolver.ResolverFunc(
		func(context.Context, string, time.Duration) ([]string, error) {
			lookups.Add(1)
			return nil, mxresolver.ErrNotFound
		},
	)))

	t.Run("absent from the record", func(t *testing.T) {
		result, err := engine.Validate(context.Background(), schema, validator.Map{"Name": "Ada"})
		require.NoError(t, err)
		assert.True(t, result.IsValid())
		assert.Empty(t, result.Errors())
		assert.Empty(t, result.Warnings())
	})

	t.Run("present with violating values", func(t *testing.T) {
		for _, n := range []int{1, 3} {
			result, err := engine.Validate(context.Background(), schema,
				validator.Map{"Name": "", "Legacy": 42, "Email": "nobody@nowhere.invalid"},
				validator.WithConcurrency(n),
			)
			require.NoError(t, err, "a disabled field is never type checked")
			require.Len(t, result.Errors(), 1)
			assert.Equal(t, "Name", result.Errors()[0].Field)
		}
	})

	assert.Zero(t, lookups.Load(), "no lookups for disabled fields")
}

func TestEngine_EmptySchemaIsValid(t *testing.T) {
	schema, err := validator.NewSchema()
	require.NoError(t, err)

	result, err := newEngine().Validate(context.Background(), schema, validator.Map{})
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.False(t, result.Degraded())
}

func TestEngine_ConfigurationErrors(t *testing.T) {
	engine := newEngine()

	t.Run("missing field aborts before evaluation", func(t *testing.T) {
		schema, err := validator.NewSchemaBuilder().
			Field("Name").NotEmpty().
			Field("Email").EmailWithMX(false).
			Build()
		require.NoError(t, err)

		result, err := engine.Validate(context.Background(), schema, validator.Map{"Name": ""})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrFieldNotInRecord)
		assert.ErrorIs(t, err, validator.ErrConfiguration)
		assert.Empty(t, result.Errors())

		var cfgErr *validator.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Email", cfgErr.Field)
	})

	t.Run("string rule on non-string value", func(t *testing.T) {
		schema := singleRule(t, validator.Must(validator.MinimumLength("Age", 1)))
		_, err := engine.Validate(context.Background(), schema, validator.Map{"Age": 42})
		assert.ErrorIs(t, err, validator.ErrTypeMismatch)
		assert.ErrorIs(t, err, validator.ErrConfiguration)
	})

	t.Run("nil record", func(t *testing.T) {
		schema := singleRule(t, validator.Must(validator.Required("Name")))
		_, err := engine.Validate(context.Background(), schema, nil)
		assert.ErrorIs(t, err, validator.ErrNilRecord)
	})
}

func TestEngine_Deterministic(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("Username").Required().LengthInterval(3, 20).MatchesPattern(`^[a-z0-9_]+$`).
		Field("Email").EmailWithMX(false).
		Field("Website").URLWithScheme(true).
		Build()
	require.NoError(t, err)
	record := validator.Map{"Username": "A", "Email": "nope", "Website": "ftp://x.test"}

	engine := newEngine()
	first, err := engine.Validate(context.Background(), schema, record)
	require.NoError(t, err)
	second, err := engine.Validate(context.Background(), schema, record)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.NotEqual(t, first.RunID(), second.RunID())
	assert.Len(t, first.Errors(), 4)
}

func TestResult_EqualIgnoresThreshold(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("Code").ExactLength(4).
		Build()
	require.NoError(t, err)
	record := validator.Map{"Code": "abc"}

	engine := newEngine()
	strict, err := engine.Validate(context.Background(), schema, record)
	require.NoError(t, err)
	lenient, err := engine.Validate(context.Background(), schema, record, validator.WithThreshold(validator.SeverityCritical))
	require.NoError(t, err)

	assert.False(t, strict.IsValid())
	assert.True(t, lenient.IsValid())
	assert.Equal(t, strict.Errors(), lenient.Errors())
	assert.True(t, strict.Equal(lenient))
	assert.True(t, lenient.Equal(strict))

	other, err := engine.Validate(context.Background(), schema, validator.Map{"Code": "abcd"})
	require.NoError(t, err)
	assert.False(t, strict.Equal(other))
}

func TestEngine_ConcurrencyPreservesOrder(t *testing.T) {
	builder := validator.NewSchemaBuilder()
	record := validator.Map{}
	for i := range 12 {
		name := fmt.Sprintf("Field%02d", i)
		builder.Field(name).NotEmpty().MinimumLength(2)
		record[name] = ""
		if i%3 == 0 {
			record[name] = "ok"
		}
	}
	schema, err := builder.Build()
	require.NoError(t, err)

	engine := newEngine()
	sequential, err := engine.Validate(context.Background(), schema, record)
	require.NoError(t, err)
	parallel, err := engine.Validate(context.Background(), schema, record, validator.WithConcurrency(4))
	require.NoError(t, err)

	assert.Equal(t, sequential.Errors(), parallel.Errors())
	assert.Len(t, parallel.Errors(), 16)
}

func TestEngine_ConcurrentTypeMismatchAborts(t *testing.T) {
	schema, err := validator.NewSchemaBuilder().
		Field("A").NotEmpty().
		Field("B").NotEmpty().
		Field("C").NotEmpty().
		Build()
	require.NoError(t, err)

	_, err = newEngine().Validate(context.Background(), schema,
		validator.Map{"A": "x", "B": 3.14, "C": "z"},
		validator.WithConcurrency(3),
	)
	assert.ErrorIs(t, err, validator.ErrTypeMismatch)
}

func TestEngine_ConcurrentAbortReportsFirstField(t *testing.T) {
	builder := validator.NewSchemaBuilder()
	record := validator.Map{}
	for i := range 8 {
		name := fmt.Sprintf("Field%d", i)
		builder.Field(name).NotEmpty()
		record[name] = "ok"
	}
	schema, err := builder.Build()
	require.NoError(t, err)
	record["Field2"] = 42
	record["Field5"] = 3.14
	record["Field7"] = true

	engine := newEngine()
	_, seqErr := engine.Validate(context.Background(), schema, record)
	var want *validator.ConfigError
	require.ErrorAs(t, seqErr, &want)
	assert.Equal(t, "Field2", want.Field)

	for _, n := range []int{2, 4, 8} {
		for range 10 {
			_, err := engine.Validate(context.Background(), schema, record, validator.WithConcurrency(n))
			var got *validator.ConfigError
			require.ErrorAs(t, err, &got)
			assert.Equal(t, "Field2", got.Field, "concurrency %d", n)
			assert.ErrorIs(t, err, validator.ErrTypeMismatch)
		}
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	schema := singleRule(t, validator.Must(validator.Required("Name")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine().Validate(ctx, schema, validator.Map{"Name": "Ada"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, validator.IsConfigError(err))
}

func TestEngine_WithConfigDefaults(t *testing.T) {
	schema := singleRule(t, validator.Must(validator.NotEmpty("Name", validator.WithSeverity(validator.SeverityWarning))))

	engine := newEngine(validator.WithConfig(validator.Config{
		Threshold:   validator.SeverityWarning,
		MXEnabled:   true,
		MXTimeout:   validator.DefaultMXTimeout,
		Concurrency: 1,
	}))
	result, err := engine.Validate(context.Background(), schema, validator.Map{"Name": ""})
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Equal(t, validator.SeverityWarning, result.Threshold())

	engine = newEngine(validator.WithDefaults(validator.WithThreshold(validator.SeverityCritical)))
	result, err = engine.Validate(context.Background(), schema, validator.Map{"Name": ""})
	require.NoError(t, err)
	assert.True(t, result.IsValid())
}

func TestEngine_StructRecord(t *testing.T) {
	type profile struct {
		Username string
		Email    string
	}
	schema, err := validator.NewSchemaBuilder().
		Field("Username").Required().
		Field("Email").EmailWithMX(true).
		Build()
	require.NoError(t, err)

	rec, err := validator.Struct(profile{Username: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	result, err := newEngine().Validate(context.Background(), schema, rec)
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.False(t, result.Degraded())
}
