package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiconsolutions/guardion/pkg/config"
	"github.com/rubiconsolutions/guardion/pkg/validator"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := validator.LoadConfig(config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, validator.SeverityError, cfg.Threshold)
	assert.True(t, cfg.MXEnabled)
	assert.Equal(t, validator.DefaultMXTimeout, cfg.MXTimeout)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := validator.LoadConfig(config.WithEnvironment(map[string]string{
		"GUARDION_FAILURE_THRESHOLD": "Warning",
		"GUARDION_MX_ENABLED":        "false",
		"GUARDION_MX_TIMEOUT":        "750ms",
		"GUARDION_CONCURRENCY":       "8",
	}))
	require.NoError(t, err)

	assert.Equal(t, validator.SeverityWarning, cfg.Threshold)
	assert.False(t, cfg.MXEnabled)
	assert.Equal(t, 750*time.Millisecond, cfg.MXTimeout)
	assert.Equal(t, 8, cfg.Concurrency)

	opts := cfg.RunOptions()
	assert.Equal(t, validator.SeverityWarning, opts.Threshold)
	assert.Equal(t, 8, opts.Concurrency)
}

func TestLoadConfig_InvalidThreshold(t *testing.T) {
	_, err := validator.LoadConfig(config.WithEnvironment(map[string]string{
		"GUARDION_FAILURE_THRESHOLD": "fatal",
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}
