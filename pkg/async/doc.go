// Package async provides small generic helpers for running work in goroutines
// and collecting the results.
//
// Go starts a function and returns a Future. A Future can be awaited
// unconditionally with Await or bounded by a context with AwaitContext, which
// is how callers put a hard deadline on work that may not honour its context.
//
// Map fans a slice out over a bounded number of goroutines and returns the
// outputs in input order, so callers get deterministic results regardless of
// scheduling. The first failure cancels the remaining work.
//
// # Usage
//
//	f := async.Go(ctx, func(ctx context.Context) ([]string, error) {
//		return resolver.LookupMX(ctx, "example.com", time.Second)
//	})
//	hosts, err := f.AwaitContext(deadlineCtx)
//
//	out, err := async.Map(ctx, 4, fields, func(ctx context.Context, i int, f Field) (Report, error) {
//		return check(ctx, f)
//	})
package async
