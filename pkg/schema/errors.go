package schema

import "errors"

var (
	ErrDecode           = errors.New("schema: failed to decode document")
	ErrMissingParameter = errors.New("schema: missing rule parameter")
	ErrReadFile         = errors.New("schema: failed to read file")
)
