package mxresolver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares lookup outcomes between processes through Redis.
// Entries are stored as JSON under prefix+domain with the entry TTL as the
// key expiration.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	owned  bool
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, domain string) (Entry, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+domain).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (s *RedisStore) Set(ctx context.Context, domain string, entry Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+domain, raw, ttl).Err()
}

// Close closes the client if the store opened it. Clients passed to
// NewRedisStore are left to the caller.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
