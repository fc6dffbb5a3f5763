// Package clientip derives the originating client address from proxy headers.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers in order of precedence
const (
	HeaderCFConnectingIP = "Cf-Connecting-Ip"
	HeaderRealIP         = "X-Real-Ip"
	HeaderForwardedFor   = "X-Forwarded-For"
)

// Pick returns the client IP announced by proxy headers.
// cf-connecting-ip wins over x-real-ip, which wins over the first x-forwarded-for entry.
// Blank values are skipped. The result is not validated as an IP.
func Pick(h http.Header) (string, bool) {
	if ip := strings.TrimSpace(h.Get(HeaderCFConnectingIP)); ip != "" {
		return ip, true
	}
	if ip := strings.TrimSpace(h.Get(HeaderRealIP)); ip != "" {
		return ip, true
	}
	if xff := h.Get(HeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip, true
		}
	}
	return "", false
}

// Key identifies the client for per-client accounting: the header-derived IP,
// else the host part of the connection's remote address.
func Key(r *http.Request) string {
	if ip, ok := Pick(r.Header); ok {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
