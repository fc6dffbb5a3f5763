package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Database Metrics
	DatabaseOpensTotal *prometheus.CounterVec
	DatabaseAvailable  *prometheus.GaugeVec

	// Application Metrics
	GeoLookupsTotal  *prometheus.CounterVec
	GeoLookupsErrors *prometheus.CounterVec
	RateLimitedTotal prometheus.Counter
}

// New creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		DatabaseOpensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geoip_database_opens_total",
				Help: "Geolocation database open attempts",
			},
			[]string{"database", "result"},
		),

		DatabaseAvailable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "geoip_database_available",
				Help: "1 when the database reader is open",
			},
			[]string{"database"},
		),

		GeoLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_lookups_total",
				Help: "Geolocation lookups by database and result (hit, miss, skipped)",
			},
			[]string{"database", "result"},
		),

		GeoLookupsErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_lookups_errors_total",
				Help: "Rejected or failed geolocation requests",
			},
			[]string{"error_type"},
		),

		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "http_requests_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}
