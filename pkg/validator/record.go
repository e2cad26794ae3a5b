package validator

import (
	"fmt"
	"reflect"
)

// Record is the data being validated. Lookup reports whether field exists
// and its current value.
type Record interface {
	Lookup(field string) (any, bool)
}

// Map adapts a map to Record.
type Map map[string]any

func (m Map) Lookup(field string) (any, bool) {
	v, ok := m[field]
	return v, ok
}

// RecordFunc adapts a function to Record.
type RecordFunc func(field string) (any, bool)

func (f RecordFunc) Lookup(field string) (any, bool) {
	return f(field)
}

// Struct adapts a struct, or a pointer to one, to Record. Fields are
// addressed by their `field` tag when present, otherwise by Go name.
// Unexported fields are ignored.
func Struct(v any) (Record, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &ConfigError{Err: ErrNilRecord}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, &ConfigError{Param: "record", Value: fmt.Sprintf("%T", v), Err: ErrTypeMismatch}
	}

	rt := rv.Type()
	fields := make(Map, rt.NumField())
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("field"); ok && tag != "" && tag != "-" {
			name = tag
		} else if tag == "-" {
			continue
		}
		fields[name] = rv.Field(i).Interface()
	}
	return fields, nil
}
