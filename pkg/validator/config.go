package validator

import (
	"time"

	"github.com/rubiconsolutions/guardion/pkg/config"
)

// Config holds the engine defaults that can be set from the environment.
type Config struct {
	Threshold   Severity      `env:"GUARDION_FAILURE_THRESHOLD" envDefault:"error"`
	MXEnabled   bool          `env:"GUARDION_MX_ENABLED" envDefault:"true"`
	MXTimeout   time.Duration `env:"GUARDION_MX_TIMEOUT" envDefault:"3s"`
	Concurrency int           `env:"GUARDION_CONCURRENCY" envDefault:"1"`
}

// LoadConfig reads Config from the environment.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RunOptions returns cfg as run defaults.
func (c Config) RunOptions() RunOptions {
	return RunOptions{
		Threshold:   c.Threshold,
		MXEnabled:   c.MXEnabled,
		MXTimeout:   c.MXTimeout,
		Concurrency: c.Concurrency,
	}
}
