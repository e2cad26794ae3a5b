package mxresolver_test

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func mxRR(name string, pref uint16, host string) dns.RR {
	return &dns.MX{
		Hdr:        dns.RR_Header{Name: name, Rrtype: dns.TypeMX, Class: dns.ClassINET, Ttl: 300},
		Preference: pref,
		Mx:         host,
	}
}

// testZone answers MX queries for a handful of fixed test domains.
func testZone(w dns.ResponseWriter, req *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(req)

	switch req.Question[0].Name {
	case "example.com.":
		m.Answer = append(m.Answer,
			mxRR("example.com.", 20, "mx2.example.com."),
			mxRR("example.com.", 10, "MX1.Example.com."),
		)
	case "nullmx.test.":
		m.Answer = append(m.Answer, mxRR("nullmx.test.", 0, "."))
	case "empty.test.":
	case "broken.test.":
		m.SetRcode(req, dns.RcodeServerFailure)
	case "slow.test.":
		time.Sleep(300 * time.Millisecond)
		m.Answer = append(m.Answer, mxRR("slow.test.", 10, "mx.slow.test."))
	default:
		m.SetRcode(req, dns.RcodeNameError)
	}

	_ = w.WriteMsg(m)
}

// startDNSServer runs testZone on a loopback UDP port and returns its address.
func startDNSServer(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		Handler:           dns.HandlerFunc(testZone),
		NotifyStartedFunc: func() { close(started) },
	}
	go func() { _ = srv.ActivateAndServe() }()
	<-started

	t.Cleanup(func() { _ = srv.Shutdown() })
	return pc.LocalAddr().String()
}
