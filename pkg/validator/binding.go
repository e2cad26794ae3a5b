package validator

import (
	"errors"
	"slices"
	"strings"
)

// FieldBinding attaches an ordered list of rules to one field name.
type FieldBinding struct {
	field    string
	rules    []Rule
	disabled bool
}

// NewFieldBinding checks that every rule targets field and returns the binding.
// Rules are evaluated in the order given.
func NewFieldBinding(field string, rules ...Rule) (FieldBinding, error) {
	if strings.TrimSpace(field) == "" {
		return FieldBinding{}, &ConfigError{Err: ErrInvalidField}
	}
	for _, r := range rules {
		if r.kind == KindUnknown {
			return FieldBinding{}, &ConfigError{Field: field, Err: ErrUnknownKind}
		}
		if r.field != field {
			return FieldBinding{}, &ConfigError{
				Kind:  r.kind,
				Field: field,
				Param: "rule.field",
				Value: r.field,
				Err:   ErrFieldMismatch,
			}
		}
	}
	return FieldBinding{field: field, rules: slices.Clone(rules)}, nil
}

func (b FieldBinding) Field() string { return b.field }

// Enabled reports whether the field is validated. A disabled field is
// skipped entirely: none of its rules run and it need not be present in
// the record.
func (b FieldBinding) Enabled() bool { return !b.disabled }

// WithEnabled returns a copy of the binding with the field switched on or off.
func (b FieldBinding) WithEnabled(enabled bool) FieldBinding {
	b.disabled = !enabled
	return b
}

// Rules returns a copy of the bound rules in evaluation order.
func (b FieldBinding) Rules() []Rule { return slices.Clone(b.rules) }

// Schema is an ordered set of field bindings with unique field names.
type Schema struct {
	bindings []FieldBinding
}

// NewSchema builds a schema, rejecting zero bindings and duplicate fields.
func NewSchema(bindings ...FieldBinding) (Schema, error) {
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if b.field == "" {
			return Schema{}, &ConfigError{Err: ErrInvalidField}
		}
		if _, dup := seen[b.field]; dup {
			return Schema{}, &ConfigError{Field: b.field, Err: ErrDuplicateField}
		}
		seen[b.field] = struct{}{}
	}
	return Schema{bindings: slices.Clone(bindings)}, nil
}

func (s Schema) Len() int { return len(s.bindings) }

// Bindings returns a copy of the bindings in schema order.
func (s Schema) Bindings() []FieldBinding { return slices.Clone(s.bindings) }

// Fields returns the bound field names in schema order.
func (s Schema) Fields() []string {
	fields := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		fields[i] = b.field
	}
	return fields
}

// SchemaBuilder assembles a Schema fluently. Construction errors are
// collected and reported by Build.
//
//	schema, err := validator.NewSchemaBuilder().
//		Field("username").Required().LengthInterval(3, 20).
//		Field("email").EmailWithMX(true).
//		Build()
type SchemaBuilder struct {
	fields []*FieldBuilder
	errs   []error
}

func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{}
}

// Field starts a new binding.
func (b *SchemaBuilder) Field(name string) *FieldBuilder {
	f := &FieldBuilder{schema: b, name: name}
	b.fields = append(b.fields, f)
	return f
}

// Build returns the schema or every error collected while building it.
func (b *SchemaBuilder) Build() (Schema, error) {
	if len(b.errs) > 0 {
		return Schema{}, errors.Join(b.errs...)
	}
	bindings := make([]FieldBinding, 0, len(b.fields))
	for _, f := range b.fields {
		binding, err := NewFieldBinding(f.name, f.rules...)
		if err != nil {
			return Schema{}, err
		}
		bindings = append(bindings, binding.WithEnabled(!f.disabled))
	}
	return NewSchema(bindings...)
}

// FieldBuilder appends rules to the field most recently started.
type FieldBuilder struct {
	schema   *SchemaBuilder
	name     string
	rules    []Rule
	disabled bool
}

func (f *FieldBuilder) add(r Rule, err error) *FieldBuilder {
	if err != nil {
		f.schema.errs = append(f.schema.errs, err)
		return f
	}
	f.rules = append(f.rules, r)
	return f
}

// Disabled skips the whole field during validation.
func (f *FieldBuilder) Disabled() *FieldBuilder {
	f.disabled = true
	return f
}

// Rule appends a prebuilt rule.
func (f *FieldBuilder) Rule(r Rule) *FieldBuilder {
	f.rules = append(f.rules, r)
	return f
}

func (f *FieldBuilder) Required(opts ...RuleOption) *FieldBuilder {
	return f.add(Required(f.name, opts...))
}

func (f *FieldBuilder) NotEmpty(opts ...RuleOption) *FieldBuilder {
	return f.add(NotEmpty(f.name, opts...))
}

func (f *FieldBuilder) ExactLength(n int, opts ...RuleOption) *FieldBuilder {
	return f.add(ExactLength(f.name, n, opts...))
}

func (f *FieldBuilder) MinimumLength(n int, opts ...RuleOption) *FieldBuilder {
	return f.add(MinimumLength(f.name, n, opts...))
}

func (f *FieldBuilder) MaximumLength(n int, opts ...RuleOption) *FieldBuilder {
	return f.add(MaximumLength(f.name, n, opts...))
}

func (f *FieldBuilder) LengthInterval(minLen, maxLen int, opts ...RuleOption) *FieldBuilder {
	return f.add(LengthInterval(f.name, minLen, maxLen, opts...))
}

func (f *FieldBuilder) MatchesPattern(pattern string, opts ...RuleOption) *FieldBuilder {
	return f.add(MatchesPattern(f.name, pattern, opts...))
}

func (f *FieldBuilder) EmailWithMX(checkMX bool, opts ...RuleOption) *FieldBuilder {
	return f.add(EmailWithMX(f.name, checkMX, opts...))
}

func (f *FieldBuilder) URLWithScheme(requireHTTP bool, opts ...RuleOption) *FieldBuilder {
	return f.add(URLWithScheme(f.name, requireHTTP, opts...))
}

// Field finishes this binding and starts the next one.
func (f *FieldBuilder) Field(name string) *FieldBuilder {
	return f.schema.Field(name)
}

func (f *FieldBuilder) Build() (Schema, error) {
	return f.schema.Build()
}
