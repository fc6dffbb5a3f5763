package middleware

import (
	"net/http"

	"github.com/geoapi/geo-service/internal/apierror"
	"github.com/geoapi/geo-service/internal/clientip"
	"github.com/geoapi/geo-service/internal/limiter"
	"github.com/geoapi/geo-service/internal/metrics"
	"github.com/geoapi/geo-service/internal/response"
)

// RateLimitMiddleware enforces the limit per client (429 rate_limited when exceeded).
// Clients are keyed like /geo/me picks its IP, falling back to the remote address.
func RateLimitMiddleware(lim limiter.Limiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow(r.Context(), clientip.Key(r)) {
				if m != nil {
					m.RateLimitedTotal.Inc()
				}
				response.Fail(w, nil, apierror.TooManyRequests("rate_limited", "Rate limit exceeded. Please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
