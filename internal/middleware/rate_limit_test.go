package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geoapi/geo-service/internal/limiter"
	"github.com/geoapi/geo-service/internal/metrics"
	"github.com/geoapi/geo-service/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRateLimitMiddleware_Allowed tests request allowed
func TestRateLimitMiddleware_Allowed(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(true)

	nextCalled := false
	handler := RateLimitMiddleware(mockLimiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !nextCalled {
		t.Error("expected next handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "success" {
		t.Errorf("expected body 'success', got '%s'", rec.Body.String())
	}
}

// TestRateLimitMiddleware_RateLimited tests request blocked with an envelope
func TestRateLimitMiddleware_RateLimited(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(false)
	m := metrics.New(prometheus.NewRegistry())

	nextCalled := false
	handler := RateLimitMiddleware(mockLimiter, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/geo/ip?ip=8.8.8.8", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if nextCalled {
		t.Error("expected next handler NOT to be called")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	if body.OK || body.Error.Code != "rate_limited" {
		t.Errorf("unexpected error body: %+v", body)
	}
	if body.Meta.TS == "" {
		t.Error("expected meta.ts")
	}
	if got := testutil.ToFloat64(m.RateLimitedTotal); got != 1 {
		t.Errorf("expected 1 rate limited request counted, got %v", got)
	}
}

// TestRateLimitMiddleware_ClientKey tests which key the limiter receives
func TestRateLimitMiddleware_ClientKey(t *testing.T) {
	tests := []struct {
		name          string
		remoteAddr    string
		cf            string
		xRealIP       string
		xForwardedFor string
		expectedKey   string
	}{
		{name: "RemoteAddr only", remoteAddr: "192.168.1.1:12345", expectedKey: "192.168.1.1"},
		{name: "X-Real-IP", remoteAddr: "192.168.1.1:12345", xRealIP: "10.0.0.1", expectedKey: "10.0.0.1"},
		{name: "CF-Connecting-IP wins", remoteAddr: "192.168.1.1:12345", cf: "10.0.0.9", xRealIP: "10.0.0.1", expectedKey: "10.0.0.9"},
		{name: "X-Forwarded-For first entry", remoteAddr: "192.168.1.1:12345", xForwardedFor: "10.0.0.3, 10.0.0.4", expectedKey: "10.0.0.3"},
		{name: "IPv6 RemoteAddr", remoteAddr: "[2001:db8::1]:8080", expectedKey: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLimiter := limiter.NewMockLimiter(true)
			handler := RateLimitMiddleware(mockLimiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest(http.MethodGet, "/geo/me", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.cf != "" {
				req.Header.Set("CF-Connecting-IP", tt.cf)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			if len(mockLimiter.AllowCalls) != 1 {
				t.Fatalf("expected 1 limiter call, got %d", len(mockLimiter.AllowCalls))
			}
			if mockLimiter.AllowCalls[0] != tt.expectedKey {
				t.Errorf("expected key %s, limiter called with %s", tt.expectedKey, mockLimiter.AllowCalls[0])
			}
		})
	}
}

// TestRateLimitMiddleware_PreservesNextHandlerResponse tests that allowed requests preserve response
func TestRateLimitMiddleware_PreservesNextHandlerResponse(t *testing.T) {
	handler := RateLimitMiddleware(limiter.NewMockLimiter(true), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom-Header", "test-value")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("custom response"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
	if rec.Header().Get("X-Custom-Header") != "test-value" {
		t.Errorf("expected custom header to be preserved")
	}
	if rec.Body.String() != "custom response" {
		t.Errorf("expected custom response body to be preserved")
	}
}
