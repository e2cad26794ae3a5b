package mxresolver

import (
	"context"
	"errors"
	"net"
	"time"
)

// NetResolver looks up MX records with a *net.Resolver, which follows the
// host's resolver configuration.
type NetResolver struct {
	resolver *net.Resolver
}

// NewNetResolver wraps r. A nil r uses net.DefaultResolver.
func NewNetResolver(r *net.Resolver) *NetResolver {
	if r == nil {
		r = net.DefaultResolver
	}
	return &NetResolver{resolver: r}
}

func (r *NetResolver) LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	records, err := r.resolver.LookupMX(ctx, domain)
	// LookupMX may return the valid subset of records together with an
	// error about malformed ones.
	if err != nil && len(records) == 0 {
		if ctx.Err() != nil {
			return nil, deadlineError(ctx, err)
		}
		return nil, classifyDNSError(err)
	}

	mx := make([]mxRecord, 0, len(records))
	for _, rec := range records {
		mx = append(mx, mxRecord{host: rec.Host, pref: rec.Pref})
	}
	return hostsByPreference(domain, mx)
}

func classifyDNSError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return errors.Join(ErrNotFound, err)
		case dnsErr.IsTimeout:
			return errors.Join(ErrTimeout, err)
		default:
			return errors.Join(ErrTransient, err)
		}
	}
	return classify(err)
}
