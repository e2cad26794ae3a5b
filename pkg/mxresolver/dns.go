package mxresolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

const defaultDNSPort = "53"

// DNSResolver queries explicit nameservers with github.com/miekg/dns.
//
// Unlike NetResolver it sees the raw response code, so NXDOMAIN and SERVFAIL
// are never confused. Servers are tried in order until one gives an
// authoritative answer (NOERROR or NXDOMAIN); truncated UDP answers are
// retried over TCP.
type DNSResolver struct {
	servers []string
	network string
}

// DNSOption configures a DNSResolver.
type DNSOption func(*DNSResolver)

// WithNetwork selects "udp" (default) or "tcp" for queries.
func WithNetwork(network string) DNSOption {
	return func(r *DNSResolver) {
		if network == "udp" || network == "tcp" {
			r.network = network
		}
	}
}

// NewDNSResolver creates a resolver for the given nameservers. Entries
// without a port get port 53.
func NewDNSResolver(servers []string, opts ...DNSOption) (*DNSResolver, error) {
	r := &DNSResolver{network: "udp"}
	for _, s := range servers {
		if s == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(s, defaultDNSPort)
		}
		r.servers = append(r.servers, s)
	}
	if len(r.servers) == 0 {
		return nil, ErrNoServers
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewDNSResolverFromResolvConf reads nameservers from a resolv.conf file.
func NewDNSResolverFromResolvConf(path string, opts ...DNSOption) (*DNSResolver, error) {
	conf, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("mxresolver: read %s: %w", path, err)
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, net.JoinHostPort(s, conf.Port))
	}
	return NewDNSResolver(servers, opts...)
}

func (r *DNSResolver) LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
	msg.RecursionDesired = true

	lastErr := ErrTransient
	for _, server := range r.servers {
		resp, err := r.exchange(ctx, msg, server)
		if err != nil {
			if ctx.Err() != nil {
				return nil, deadlineError(ctx, err)
			}
			lastErr = classify(fmt.Errorf("%s via %s: %w", domain, server, err))
			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			var records []mxRecord
			for _, rr := range resp.Answer {
				if mx, ok := rr.(*dns.MX); ok {
					records = append(records, mxRecord{host: mx.Mx, pref: mx.Preference})
				}
			}
			return hostsByPreference(domain, records)
		case dns.RcodeNameError:
			return nil, errors.Join(ErrNotFound, fmt.Errorf("%s: NXDOMAIN from %s", domain, server))
		default:
			lastErr = errors.Join(ErrTransient, fmt.Errorf("%s: %s from %s", domain, dns.RcodeToString[resp.Rcode], server))
		}
	}

	return nil, lastErr
}

func (r *DNSResolver) exchange(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
	client := &dns.Client{Net: r.network}
	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, err
	}
	if resp.Truncated && r.network == "udp" {
		tcp := &dns.Client{Net: "tcp"}
		resp, _, err = tcp.ExchangeContext(ctx, msg, server)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}
