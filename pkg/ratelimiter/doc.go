// Package ratelimiter provides a token bucket limiter with an in-memory store.
//
// The bucket allows bursts up to Capacity and refills RefillRate tokens every
// RefillInterval. A denied request does not drain the bucket; the result
// reports the shortfall as a negative Remaining count.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.PerSecond(20, 40))
//	if err != nil {
//		return err
//	}
//
//	// Non-blocking check.
//	res, err := limiter.Allow(ctx, "dns")
//	if err == nil && !res.Allowed() {
//		time.Sleep(res.RetryAfter())
//	}
//
//	// Or block until a token is free.
//	if err := limiter.Wait(ctx, "dns"); err != nil {
//		return err
//	}
//
// mxresolver.Throttled uses a Bucket to cap the rate of outbound DNS queries.
package ratelimiter
