package mxresolver

import (
	"context"
	"slices"
	"time"

	"github.com/rubiconsolutions/guardion/pkg/cache"
)

// LRUStore keeps lookup outcomes in process memory.
type LRUStore struct {
	cache *cache.LRUCache[string, Entry]
}

// NewLRUStore creates a store holding at most size domains.
func NewLRUStore(size int, opts ...cache.Option[string, Entry]) *LRUStore {
	return &LRUStore{cache: cache.NewLRUCache[string, Entry](size, opts...)}
}

func (s *LRUStore) Get(_ context.Context, domain string) (Entry, bool, error) {
	e, ok := s.cache.Get(domain)
	if !ok {
		return Entry{}, false, nil
	}
	return Entry{Hosts: slices.Clone(e.Hosts), NotFound: e.NotFound}, true, nil
}

func (s *LRUStore) Set(_ context.Context, domain string, entry Entry, ttl time.Duration) error {
	entry.Hosts = slices.Clone(entry.Hosts)
	s.cache.PutWithTTL(domain, entry, ttl)
	return nil
}
