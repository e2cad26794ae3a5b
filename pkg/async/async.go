package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Go runs fn in its own goroutine and returns a Future for its result.
// A context that is already cancelled completes the Future with ctx.Err()
// without calling fn.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the computation finishes.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the computation finishes or ctx is done,
// whichever happens first. When ctx wins the goroutine keeps running; callers
// are expected to have passed the same (or a derived) context to Go so the
// computation can observe the cancellation.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		// Prefer a result that raced with the deadline.
		select {
		case <-f.done:
			return f.result, f.err
		default:
		}
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the computation has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll waits for every future and returns their results in input order.
// The returned error is the first non-nil error by position, so the outcome
// does not depend on completion order.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	var firstErr error

	for i, f := range futures {
		res, err := f.Await()
		results[i] = res
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// Map applies fn to every item using at most limit goroutines and returns the
// outputs in input order. A failure at index i cancels the context passed to
// items after i; earlier items run to completion. The returned error is the
// failure with the lowest index, so it does not depend on scheduling.
// A limit below one is treated as one.
func Map[T, U any](ctx context.Context, limit int, items []T, fn func(context.Context, int, T) (U, error)) ([]U, error) {
	if limit < 1 {
		limit = 1
	}
	if len(items) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		failedAt = len(items)
		cancels  = make([]context.CancelFunc, len(items))
	)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range cancels {
			if c != nil {
				c()
			}
		}
	}()

	fail := func(i int) {
		mu.Lock()
		defer mu.Unlock()
		if i >= failedAt {
			return
		}
		failedAt = i
		for _, c := range cancels[i+1:] {
			if c != nil {
				c()
			}
		}
	}

	sem := make(chan struct{}, limit)
	futures := make([]*Future[U], len(items))

	for i, item := range items {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			futures[i] = completed[U](ctx.Err())
			continue
		}

		mu.Lock()
		if i > failedAt {
			mu.Unlock()
			<-sem
			futures[i] = completed[U](context.Canceled)
			continue
		}
		itemCtx, itemCancel := context.WithCancel(ctx)
		cancels[i] = itemCancel
		mu.Unlock()

		futures[i] = Go(context.WithoutCancel(itemCtx), func(context.Context) (U, error) {
			defer func() { <-sem }()
			res, err := fn(itemCtx, i, item)
			if err != nil {
				fail(i)
			}
			return res, err
		})
	}

	// Items before the first failure are never cancelled here, so the first
	// error by position is the lowest-index failure or the caller's ctx error.
	return WaitAll(futures...)
}

func completed[T any](err error) *Future[T] {
	f := &Future[T]{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}
