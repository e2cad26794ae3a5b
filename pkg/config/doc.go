// Package config loads environment-based configuration into tagged structs.
//
// It wraps github.com/caarlos0/env for parsing and github.com/joho/godotenv for
// optional .env files. Each package that needs configuration declares its own
// struct with `env` / `envDefault` tags and calls Load:
//
//	var cfg validator.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Any type implementing encoding.TextUnmarshaler (for example
// validator.Severity) can be used as a field type.
//
// Errors returned by Load wrap ErrParsingConfig or ErrLoadingEnvFile and can be
// matched with errors.Is.
package config
