package router

import (
	"net/http"

	_ "github.com/geoapi/geo-service/docs" // Swagger docs
	"github.com/geoapi/geo-service/internal/handler"
	"github.com/geoapi/geo-service/internal/limiter"
	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/metrics"
	custommiddleware "github.com/geoapi/geo-service/internal/middleware"
	"github.com/geoapi/geo-service/internal/response"
	"github.com/geoapi/geo-service/internal/router/geo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter creates the Chi router with all middleware and routes
//
// Parameters:
//   - geoHandler: the geolocation handler
//   - rateLimiter: the rate limiter (nil disables rate limiting)
//   - m: metrics collector (nil disables metrics and the /metrics route)
//   - log: structured logger
//
// Returns:
//   - chi.Router: configured router ready to use
func SetupRouter(geoHandler *handler.GeoHandler, rateLimiter limiter.Limiter, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Order matters: the request ID must exist before logging, and panics are
	// recovered inside logging and metrics so the 500 is still logged and counted.
	// 429 rejections are counted too, under the "unmatched" endpoint.
	r.Use(middleware.RequestID)
	r.Use(custommiddleware.LoggingMiddleware(log))
	if m != nil {
		r.Use(custommiddleware.MetricsMiddleware(m))
	}
	r.Use(custommiddleware.RecoverMiddleware(log))
	if rateLimiter != nil {
		r.Use(custommiddleware.RateLimitMiddleware(rateLimiter, m))
	}

	// Must be set before Mount so the subrouter inherits them.
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(byPath(map[string]http.HandlerFunc{
		"/health": handler.Health,
		"/geo/me": geoHandler.Me,
		"/geo/ip": geoHandler.IP,
	}))

	r.HandleFunc("/health", handler.Health)
	r.Mount("/geo", geo.SetupRoutes(geoHandler))

	if m != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Swagger UI at /swagger/index.html
	r.HandleFunc("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// byPath serves methods chi does not know (PURGE, PROPFIND, ...) by path alone,
// so the API routes answer every method and anything else gets the 404 envelope.
func byPath(routes map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		response.NotFound(w, r)
	}
}
