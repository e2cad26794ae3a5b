package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option tweaks how a single Load call parses the environment.
type Option func(*options)

type options struct {
	prefix      string
	environment map[string]string
	files       []string
}

// WithPrefix prepends prefix to every env tag, e.g. "TEST_" turns
// GUARDION_MX_TIMEOUT into TEST_GUARDION_MX_TIMEOUT.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment parses from the given map instead of the process
// environment. The default .env file is not consulted in that case.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// WithFiles loads extra dotenv files before parsing. Variables already set in
// the process environment win over file values.
func WithFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// Load parses environment variables into the struct pointed to by v using
// `env` and `envDefault` tags.
//
// The first call loads a .env file from the working directory if one exists.
//
// Example:
//
//	type ResolverConfig struct {
//		Servers []string      `env:"GUARDION_DNS_SERVERS" envSeparator:","`
//		Timeout time.Duration `env:"GUARDION_MX_TIMEOUT" envDefault:"3s"`
//	}
//
//	var cfg ResolverConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environment == nil {
		defaultEnvLoaded.Do(func() {
			// The .env file is optional.
			_ = godotenv.Load()
		})
	}

	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
