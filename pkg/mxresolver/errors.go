package mxresolver

import "errors"

var (
	// ErrNotFound means the domain definitively has no mail exchanger:
	// NXDOMAIN, an empty MX answer, or an RFC 7505 null MX.
	ErrNotFound = errors.New("mxresolver: no mx records")

	// ErrTimeout means the lookup did not finish within its deadline.
	ErrTimeout = errors.New("mxresolver: lookup timed out")

	// ErrTransient means the lookup failed for a reason that says nothing
	// about the domain itself (SERVFAIL, refused, network errors).
	ErrTransient = errors.New("mxresolver: transient lookup failure")

	// ErrThrottled means the query budget was exhausted before the lookup
	// could be sent. It is always joined with ErrTransient.
	ErrThrottled = errors.New("mxresolver: lookup rate limit exceeded")

	// ErrNoServers is returned when a DNS resolver is built without servers.
	ErrNoServers = errors.New("mxresolver: no dns servers configured")
)
