// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache with optional per-entry expiration.
//
// The cache evicts the least recently used entry once it grows past its
// capacity. Entries stored with PutWithTTL additionally disappear once their
// time-to-live has elapsed; expiry is checked lazily on Get, so no background
// goroutine is involved.
//
// # Usage
//
//	c := cache.NewLRUCache[string, []string](1024)
//
//	c.PutWithTTL("example.com", []string{"mx1.example.com"}, 10*time.Minute)
//
//	if hosts, ok := c.Get("example.com"); ok {
//		// use hosts
//	}
//
// # Options
//
//   - WithClock replaces time.Now, which keeps expiry tests deterministic.
//   - WithEvictCallback runs for every entry that leaves the cache.
//
// # Performance Characteristics
//
// Get, Put, PutWithTTL and Remove are O(1). All methods serialize on a single
// mutex, which is adequate for caches fronting network lookups.
package cache
