package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rubiconsolutions/guardion/pkg/validator"
)

// Document is the YAML form of a validator.Schema.
type Document struct {
	Defaults Defaults   `yaml:"defaults"`
	Fields   []FieldDef `yaml:"fields"`
}

// Defaults are optional run settings stored alongside the rules.
type Defaults struct {
	Threshold string        `yaml:"threshold"`
	CheckMX   *bool         `yaml:"check_mx"`
	MXTimeout time.Duration `yaml:"mx_timeout"`
}

// FieldDef binds rules to one field. Enabled defaults to true; false skips
// the field entirely.
type FieldDef struct {
	Name    string    `yaml:"name"`
	Enabled *bool     `yaml:"enabled"`
	Rules   []RuleDef `yaml:"rules"`
}

// RuleDef describes one rule. Which parameters apply depends on Kind:
// length for exact_length, min for min_length, max for max_length, min and
// max for length_interval, pattern for matches_pattern, check_mx for
// email_mx and require_http for url.
type RuleDef struct {
	Kind           string `yaml:"kind"`
	Severity       string `yaml:"severity"`
	Message        string `yaml:"message"`
	SuggestedValue string `yaml:"suggested_value"`
	Enabled        *bool  `yaml:"enabled"`

	Length      *int   `yaml:"length"`
	Min         *int   `yaml:"min"`
	Max         *int   `yaml:"max"`
	Pattern     string `yaml:"pattern"`
	CheckMX     bool   `yaml:"check_mx"`
	RequireHTTP *bool  `yaml:"require_http"`
}

// Decode reads a Document. Unknown keys are rejected.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, errors.Join(ErrDecode, err)
	}
	return doc, nil
}

// Parse decodes YAML and builds the schema it describes.
func Parse(data []byte) (validator.Schema, error) {
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return validator.Schema{}, err
	}
	return doc.Schema()
}

// LoadFile reads and parses a schema file.
func LoadFile(path string) (validator.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validator.Schema{}, errors.Join(ErrReadFile, err)
	}
	return Parse(data)
}

// Schema builds a validator.Schema. Every rule goes through the validator
// constructors, so the same parameter checks apply as in code.
func (d Document) Schema() (validator.Schema, error) {
	bindings := make([]validator.FieldBinding, 0, len(d.Fields))
	for _, f := range d.Fields {
		rules := make([]validator.Rule, 0, len(f.Rules))
		for i, def := range f.Rules {
			r, err := def.build(f.Name)
			if err != nil {
				return validator.Schema{}, fmt.Errorf("field %q rule #%d: %w", f.Name, i+1, err)
			}
			rules = append(rules, r)
		}
		b, err := validator.NewFieldBinding(f.Name, rules...)
		if err != nil {
			return validator.Schema{}, err
		}
		if f.Enabled != nil {
			b = b.WithEnabled(*f.Enabled)
		}
		bindings = append(bindings, b)
	}
	return validator.NewSchema(bindings...)
}

// RunOptions converts the document defaults into run options.
func (d Document) RunOptions() ([]validator.RunOption, error) {
	var opts []validator.RunOption
	if d.Defaults.Threshold != "" {
		sev, err := validator.ParseSeverity(d.Defaults.Threshold)
		if err != nil {
			return nil, &validator.ConfigError{Param: "defaults.threshold", Value: d.Defaults.Threshold, Err: err}
		}
		opts = append(opts, validator.WithThreshold(sev))
	}
	if d.Defaults.CheckMX != nil {
		opts = append(opts, validator.WithMXCheck(*d.Defaults.CheckMX))
	}
	if d.Defaults.MXTimeout > 0 {
		opts = append(opts, validator.WithMXTimeout(d.Defaults.MXTimeout))
	}
	return opts, nil
}

func (s RuleDef) build(field string) (validator.Rule, error) {
	kind, err := validator.ParseKind(s.Kind)
	if err != nil {
		return validator.Rule{}, &validator.ConfigError{Field: field, Param: "kind", Value: s.Kind, Err: err}
	}

	opts, err := s.options()
	if err != nil {
		return validator.Rule{}, &validator.ConfigError{Kind: kind, Field: field, Param: "severity", Value: s.Severity, Err: err}
	}

	switch kind {
	case validator.KindRequired:
		return validator.Required(field, opts...)
	case validator.KindNotEmpty:
		return validator.NotEmpty(field, opts...)
	case validator.KindExactLength:
		n, err := param(kind, field, s.Length, "length")
		if err != nil {
			return validator.Rule{}, err
		}
		return validator.ExactLength(field, n, opts...)
	case validator.KindMinimumLength:
		n, err := param(kind, field, s.Min, "min")
		if err != nil {
			return validator.Rule{}, err
		}
		return validator.MinimumLength(field, n, opts...)
	case validator.KindMaximumLength:
		n, err := param(kind, field, s.Max, "max")
		if err != nil {
			return validator.Rule{}, err
		}
		return validator.MaximumLength(field, n, opts...)
	case validator.KindLengthInterval:
		minLen, err := param(kind, field, s.Min, "min")
		if err != nil {
			return validator.Rule{}, err
		}
		maxLen, err := param(kind, field, s.Max, "max")
		if err != nil {
			return validator.Rule{}, err
		}
		return validator.LengthInterval(field, minLen, maxLen, opts...)
	case validator.KindMatchesPattern:
		return validator.MatchesPattern(field, s.Pattern, opts...)
	case validator.KindEmailWithMX:
		return validator.EmailWithMX(field, s.CheckMX, opts...)
	case validator.KindURLWithScheme:
		requireHTTP := true
		if s.RequireHTTP != nil {
			requireHTTP = *s.RequireHTTP
		}
		return validator.URLWithScheme(field, requireHTTP, opts...)
	default:
		return validator.Rule{}, &validator.ConfigError{Field: field, Err: validator.ErrUnknownKind}
	}
}

func (s RuleDef) options() ([]validator.RuleOption, error) {
	var opts []validator.RuleOption
	if s.Severity != "" {
		sev, err := validator.ParseSeverity(s.Severity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, validator.WithSeverity(sev))
	}
	if s.Message != "" {
		opts = append(opts, validator.WithMessage(s.Message))
	}
	if s.SuggestedValue != "" {
		opts = append(opts, validator.WithSuggestedValue(s.SuggestedValue))
	}
	if s.Enabled != nil {
		opts = append(opts, validator.WithEnabled(*s.Enabled))
	}
	return opts, nil
}

func param(kind validator.Kind, field string, v *int, name string) (int, error) {
	if v == nil {
		return 0, &validator.ConfigError{Kind: kind, Field: field, Param: name, Value: nil, Err: ErrMissingParameter}
	}
	return *v, nil
}
