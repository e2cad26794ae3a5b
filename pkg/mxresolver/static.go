package mxresolver

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Answer is the canned outcome for one domain in a Static resolver.
type Answer struct {
	Hosts []string
	Err   error
}

// Static is an in-memory Resolver keyed by lowercase domain, for tests and
// offline environments. Unknown domains resolve to ErrNotFound.
//
//	r := mxresolver.Static{
//		"example.com": {Hosts: []string{"mx.example.com"}},
//		"flaky.test":  {Err: mxresolver.ErrTransient},
//	}
type Static map[string]Answer

func (s Static) LookupMX(ctx context.Context, domain string, _ time.Duration) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a, ok := s[normalizeHost(domain)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, domain)
	}
	if a.Err != nil {
		return nil, a.Err
	}
	if len(a.Hosts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, domain)
	}
	return slices.Clone(a.Hosts), nil
}
