package mxresolver

import (
	"context"
	"errors"
	"time"
)

// Limiter hands out permission to send one query.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

const throttleKey = "mx"

// Throttled caps the rate of lookups sent to the wrapped resolver. A lookup
// that cannot get a slot within its timeout fails with ErrThrottled joined
// with ErrTransient, so callers treat it as a degraded check.
type Throttled struct {
	next    Resolver
	limiter Limiter
}

func NewThrottled(next Resolver, limiter Limiter) *Throttled {
	return &Throttled{next: next, limiter: limiter}
}

func (t *Throttled) LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	waitCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	if err := t.limiter.Wait(waitCtx, throttleKey); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Join(ErrTransient, ErrThrottled, err)
	}
	return t.next.LookupMX(ctx, domain, timeout)
}
