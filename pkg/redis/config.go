package redis

import "time"

// Config describes how to reach the Redis server that backs the shared MX
// cache.
type Config struct {
	ConnectionURL  string        `env:"GUARDION_REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/0
	RetryAttempts  int           `env:"GUARDION_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"GUARDION_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"GUARDION_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	KeyPrefix      string        `env:"GUARDION_REDIS_KEY_PREFIX" envDefault:"guardion:mx:"`
}
