package mxresolver

import (
	"context"
	"errors"
	"net"
	"slices"
	"strings"
	"time"
)

// Resolver looks up the mail exchangers of a domain.
//
// Implementations return host names ordered by preference, or an error
// matching exactly one of ErrNotFound, ErrTimeout or ErrTransient with
// errors.Is. A cancelled ctx is reported as ctx.Err(). A non-positive timeout
// means no deadline beyond ctx.
type Resolver interface {
	LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, domain string, timeout time.Duration) ([]string, error)

func (f ResolverFunc) LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	return f(ctx, domain, timeout)
}

type mxRecord struct {
	host string
	pref uint16
}

// normalizeHost lowercases a DNS name and strips the trailing root dot.
func normalizeHost(host string) string {
	return strings.ToLower(strings.TrimSuffix(host, "."))
}

// hostsByPreference orders records and applies RFC 7505: a single MX whose
// exchange is the root name means the domain accepts no mail.
func hostsByPreference(domain string, records []mxRecord) ([]string, error) {
	if len(records) == 0 {
		return nil, errors.Join(ErrNotFound, errors.New(domain+": empty mx answer"))
	}
	if len(records) == 1 && normalizeHost(records[0].host) == "" {
		return nil, errors.Join(ErrNotFound, errors.New(domain+": null mx"))
	}

	slices.SortStableFunc(records, func(a, b mxRecord) int {
		return int(a.pref) - int(b.pref)
	})

	hosts := make([]string, 0, len(records))
	for _, r := range records {
		if h := normalizeHost(r.host); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts, nil
}

// deadlineError maps a finished context to the package taxonomy.
func deadlineError(ctx context.Context, cause error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, cause)
	}
	return ctx.Err()
}

// classify maps network-level failures to the package taxonomy.
func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrTimeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return errors.Join(ErrTimeout, err)
	default:
		return errors.Join(ErrTransient, err)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
