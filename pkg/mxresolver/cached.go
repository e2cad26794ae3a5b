package mxresolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/rubiconsolutions/guardion/pkg/logger"
)

// Entry is a cached lookup outcome.
type Entry struct {
	Hosts    []string `json:"hosts,omitempty"`
	NotFound bool     `json:"not_found,omitempty"`
}

// Store persists lookup outcomes keyed by normalized domain.
type Store interface {
	Get(ctx context.Context, domain string) (Entry, bool, error)
	Set(ctx context.Context, domain string, entry Entry, ttl time.Duration) error
}

// Cached decorates a Resolver with a Store. Positive answers and ErrNotFound
// are cached; timeouts and transient failures never are, so a flaky network
// cannot pin a domain as undeliverable. Store failures are logged and
// otherwise ignored.
type Cached struct {
	next        Resolver
	store       Store
	ttl         time.Duration
	negativeTTL time.Duration
	logger      *slog.Logger
}

// CacheOption configures a Cached resolver.
type CacheOption func(*Cached)

// WithTTL sets how long positive answers are kept.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cached) { c.ttl = ttl }
}

// WithNegativeTTL sets how long ErrNotFound answers are kept. Zero disables
// negative caching.
func WithNegativeTTL(ttl time.Duration) CacheOption {
	return func(c *Cached) { c.negativeTTL = ttl }
}

// WithCacheLogger sets the logger used for store failures.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCached(next Resolver, store Store, opts ...CacheOption) *Cached {
	c := &Cached{
		next:        next,
		store:       store,
		ttl:         10 * time.Minute,
		negativeTTL: time.Minute,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	key := normalizeHost(domain)

	entry, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "mx cache read failed",
			logger.Component("mxresolver"), logger.Domain(key), logger.Error(err))
	case ok && entry.NotFound:
		return nil, fmt.Errorf("%w: %s (cached)", ErrNotFound, key)
	case ok:
		return slices.Clone(entry.Hosts), nil
	}

	hosts, err := c.next.LookupMX(ctx, domain, timeout)
	switch {
	case err == nil:
		c.put(ctx, key, Entry{Hosts: hosts}, c.ttl)
	case errors.Is(err, ErrNotFound) && c.negativeTTL > 0:
		c.put(ctx, key, Entry{NotFound: true}, c.negativeTTL)
	}
	return hosts, err
}

func (c *Cached) put(ctx context.Context, key string, entry Entry, ttl time.Duration) {
	if err := c.store.Set(ctx, key, entry, ttl); err != nil {
		c.logger.WarnContext(ctx, "mx cache write failed",
			logger.Component("mxresolver"), logger.Domain(key), logger.Error(err))
	}
}

// Close releases the store when it holds resources, such as a RedisStore
// opened by New.
func (c *Cached) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
