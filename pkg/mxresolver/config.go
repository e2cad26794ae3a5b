package mxresolver

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rubiconsolutions/guardion/pkg/config"
	"github.com/rubiconsolutions/guardion/pkg/ratelimiter"
	"github.com/rubiconsolutions/guardion/pkg/redis"
)

// Config selects and tunes the resolver chain built by New.
type Config struct {
	// Servers are explicit nameservers (host or host:port). When empty and
	// ResolvConf is empty the system resolver is used.
	Servers    []string `env:"GUARDION_DNS_SERVERS" envSeparator:","`
	ResolvConf string   `env:"GUARDION_DNS_RESOLV_CONF"`
	Network    string   `env:"GUARDION_DNS_NET" envDefault:"udp"`

	CacheSize   int           `env:"GUARDION_MX_CACHE_SIZE" envDefault:"1024"` // 0 disables the in-memory cache
	CacheTTL    time.Duration `env:"GUARDION_MX_CACHE_TTL" envDefault:"10m"`
	NegativeTTL time.Duration `env:"GUARDION_MX_NEGATIVE_TTL" envDefault:"1m"`

	RateLimit int `env:"GUARDION_DNS_RATE_LIMIT" envDefault:"0"` // queries per second, 0 disables throttling
	RateBurst int `env:"GUARDION_DNS_RATE_BURST" envDefault:"0"`

	// SharedCache keeps answers in Redis under Redis.KeyPrefix instead of
	// the in-memory LRU.
	SharedCache bool `env:"GUARDION_MX_SHARED_CACHE" envDefault:"false"`
	Redis       redis.Config
}

// LoadConfig reads Config from the environment.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option customizes New.
type Option func(*builder)

type builder struct {
	store       Store
	redisClient goredis.UniversalClient
	logger      *slog.Logger
}

// WithStore caches answers in store (for example a RedisStore) instead of
// the in-memory LRU sized by Config.CacheSize.
func WithStore(store Store) Option {
	return func(b *builder) { b.store = store }
}

// WithRedisClient backs the shared cache with client instead of connecting
// to Config.Redis. The caller keeps ownership of client.
func WithRedisClient(client goredis.UniversalClient) Option {
	return func(b *builder) { b.redisClient = client }
}

// WithLogger sets the logger used by the cache layer.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) { b.logger = l }
}

// New builds a Resolver from cfg: a DNSResolver when nameservers are
// configured, the system resolver otherwise. Lookups are throttled when
// RateLimit is set and cached unless caching is disabled; cache hits do
// not count against the rate limit.
//
// With SharedCache set, New connects to cfg.Redis under ctx. The returned
// resolver then implements io.Closer and closing it releases the connection.
func New(ctx context.Context, cfg Config, opts ...Option) (Resolver, error) {
	b := &builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}

	var (
		base Resolver
		err  error
	)
	switch {
	case len(cfg.Servers) > 0:
		base, err = NewDNSResolver(cfg.Servers, WithNetwork(cfg.Network))
	case cfg.ResolvConf != "":
		base, err = NewDNSResolverFromResolvConf(cfg.ResolvConf, WithNetwork(cfg.Network))
	default:
		base = NewNetResolver(nil)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		limiter, err := ratelimiter.NewBucket(
			ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)),
			ratelimiter.PerSecond(cfg.RateLimit, cfg.RateBurst),
		)
		if err != nil {
			return nil, err
		}
		base = NewThrottled(base, limiter)
	}

	store := b.store
	switch {
	case store != nil:
	case cfg.SharedCache && b.redisClient != nil:
		store = NewRedisStore(b.redisClient, cfg.Redis.KeyPrefix)
	case cfg.SharedCache:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store = &RedisStore{client: client, prefix: cfg.Redis.KeyPrefix, owned: true}
	case cfg.CacheSize > 0:
		store = NewLRUStore(cfg.CacheSize)
	}
	if store == nil {
		return base, nil
	}

	return NewCached(base, store,
		WithTTL(cfg.CacheTTL),
		WithNegativeTTL(cfg.NegativeTTL),
		WithCacheLogger(b.logger),
	), nil
}
