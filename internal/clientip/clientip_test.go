package clientip

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestPick_Precedence tests header precedence for every presence combination
func TestPick_Precedence(t *testing.T) {
	tests := []struct {
		name          string
		cf            string
		realIP        string
		forwardedFor  string
		expectedIP    string
		expectedFound bool
	}{
		{name: "none"},
		{name: "cf only", cf: "1.1.1.1", expectedIP: "1.1.1.1", expectedFound: true},
		{name: "real ip only", realIP: "2.2.2.2", expectedIP: "2.2.2.2", expectedFound: true},
		{name: "forwarded for only", forwardedFor: "3.3.3.3", expectedIP: "3.3.3.3", expectedFound: true},
		{name: "cf and real ip", cf: "1.1.1.1", realIP: "2.2.2.2", expectedIP: "1.1.1.1", expectedFound: true},
		{name: "cf and forwarded for", cf: "1.1.1.1", forwardedFor: "3.3.3.3", expectedIP: "1.1.1.1", expectedFound: true},
		{name: "real ip and forwarded for", realIP: "2.2.2.2", forwardedFor: "3.3.3.3", expectedIP: "2.2.2.2", expectedFound: true},
		{name: "all three", cf: "1.1.1.1", realIP: "2.2.2.2", forwardedFor: "3.3.3.3", expectedIP: "1.1.1.1", expectedFound: true},
		{name: "forwarded for chain", forwardedFor: " 10.0.0.3 , 10.0.0.4, 10.0.0.5", expectedIP: "10.0.0.3", expectedFound: true},
		{name: "blank cf falls through", cf: "   ", realIP: "2.2.2.2", expectedIP: "2.2.2.2", expectedFound: true},
		{name: "blank everything", cf: " ", realIP: "", forwardedFor: " , 10.0.0.4"},
		{name: "ipv6", cf: "2001:db8::1", expectedIP: "2001:db8::1", expectedFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.cf != "" {
				h.Set("CF-Connecting-IP", tt.cf)
			}
			if tt.realIP != "" {
				h.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwardedFor != "" {
				h.Set("X-Forwarded-For", tt.forwardedFor)
			}

			ip, found := Pick(h)

			if found != tt.expectedFound {
				t.Errorf("expected found=%v, got %v", tt.expectedFound, found)
			}
			if ip != tt.expectedIP {
				t.Errorf("expected IP %q, got %q", tt.expectedIP, ip)
			}
		})
	}
}

// TestPick_CaseInsensitive tests lookup of lower-case header names
func TestPick_CaseInsensitive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/geo/me", nil)
	req.Header.Add("cf-connecting-ip", "9.9.9.9")
	req.Header.Add("X-REAL-IP", "8.8.8.8")

	ip, found := Pick(req.Header)
	if !found || ip != "9.9.9.9" {
		t.Errorf("expected 9.9.9.9, got %q (found=%v)", ip, found)
	}
}

// TestKey tests the remote address fallback
func TestKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		expected   string
	}{
		{"header wins", "192.168.1.1:12345", "10.0.0.1", "10.0.0.1"},
		{"ipv4 remote addr", "192.168.1.1:12345", "", "192.168.1.1"},
		{"ipv6 remote addr", "[2001:db8::1]:8080", "", "2001:db8::1"},
		{"remote addr without port", "192.168.1.1", "", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := Key(req); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
