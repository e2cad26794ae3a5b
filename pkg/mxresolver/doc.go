// Package mxresolver looks up DNS MX records and classifies failures.
//
// Every Resolver reports one of three outcomes besides success, each matched
// with errors.Is:
//
//   - ErrNotFound: the domain has no mail exchanger (NXDOMAIN, empty answer,
//     RFC 7505 null MX). This is a fact about the domain.
//   - ErrTimeout: the lookup exceeded its deadline.
//   - ErrTransient: the lookup failed for reasons unrelated to the domain.
//
// Callers validating addresses treat only ErrNotFound as a verdict; the other
// two mean "could not check right now".
//
// # Implementations
//
//   - NetResolver uses net.Resolver and the host configuration.
//   - DNSResolver queries explicit nameservers with github.com/miekg/dns and
//     sees raw response codes.
//   - Cached wraps any Resolver with a Store (LRUStore in memory, RedisStore
//     shared through Redis).
//   - Static and ResolverFunc serve tests and offline environments.
//
// # Usage
//
//	cfg, err := mxresolver.LoadConfig()
//	if err != nil {
//		return err
//	}
//	resolver, err := mxresolver.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	hosts, err := resolver.LookupMX(ctx, "example.com", 3*time.Second)
//
// With GUARDION_MX_SHARED_CACHE=true New connects to Redis using the
// GUARDION_REDIS_* settings and shares answers between processes. Close the
// resolver through io.Closer when done.
package mxresolver
