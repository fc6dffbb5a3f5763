package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/geoapi/geo-service/internal/config"
	"github.com/geoapi/geo-service/internal/geodb"
	"github.com/geoapi/geo-service/internal/handler"
	"github.com/geoapi/geo-service/internal/limiter"
	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/metrics"
	"github.com/geoapi/geo-service/internal/normalizer"
	"github.com/geoapi/geo-service/internal/router"
	"github.com/geoapi/geo-service/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// @title           Geo API
// @version         1.0
// @description     IP geolocation service backed by MaxMind city and ASN databases

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:9010
// @BasePath  /
func main() {
	appConfig := config.Load()

	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appConfig, appLogger)

	// Databases open lazily on the first geo request.
	gateway := geodb.NewGateway(geodb.Paths{
		City: appConfig.CityDBPath,
		ASN:  appConfig.ASNDBPath,
	}, geodb.OpenMaxmind, metricsCollector, appLogger)

	rateLimiter := setupRateLimiter(appConfig, appLogger)

	geoService := service.NewGeoService(gateway, normalizer.New(appConfig.Locales...), metricsCollector, appLogger)
	geoHandler := handler.NewGeoHandler(geoService, appLogger)
	appRouter := router.SetupRouter(geoHandler, rateLimiter, metricsCollector, appLogger)

	runServer(appConfig, appRouter, appLogger)

	if err := gateway.Close(); err != nil {
		appLogger.Warn().Err(err).Msg("Failed to close databases")
	}
	if rateLimiter != nil {
		if err := rateLimiter.Close(); err != nil {
			appLogger.Warn().Err(err).Msg("Failed to close rate limiter")
		}
	}
	appLogger.Info().Msg("Server stopped")
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting Geo API server...")
	appLogger.Info().
		Str("addr", appConfig.Addr()).
		Str("city_db", appConfig.CityDBPath).
		Str("asn_db", appConfig.ASNDBPath).
		Strs("locales", appConfig.Locales).
		Bool("rate_limit_enabled", appConfig.RateLimitEnabled()).
		Bool("metrics_enabled", appConfig.MetricsEnabled).
		Msg("Configuration loaded")

	if appConfig.CityDBPath == "" && appConfig.ASNDBPath == "" {
		appLogger.Warn().Msg("No geolocation database configured; lookups will return empty results")
	}

	return appLogger
}

// setupMetrics initializes the Prometheus metrics collector, or returns nil when disabled
func setupMetrics(appConfig *config.Config, log *logger.Logger) *metrics.Metrics {
	if !appConfig.MetricsEnabled {
		log.Info().Msg("Metrics disabled")
		return nil
	}

	metricsCollector := metrics.New(prometheus.DefaultRegisterer)
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// setupRateLimiter initializes the rate limiter, or returns nil when disabled
func setupRateLimiter(appConfig *config.Config, log *logger.Logger) limiter.Limiter {
	if !appConfig.RateLimitEnabled() {
		return nil
	}

	rateLimiter, err := limiter.New(limiter.Config{
		Type:          appConfig.RateLimitType,
		Limit:         appConfig.RateLimit,
		Window:        time.Duration(appConfig.RateLimitWindow) * time.Second,
		RedisAddr:     appConfig.RedisAddr,
		RedisPassword: appConfig.RedisPassword,
		RedisDB:       appConfig.RedisDB,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Int("limit", appConfig.RateLimit).
		Int("window_seconds", appConfig.RateLimitWindow).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests
// for at most the configured shutdown timeout.
func runServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	srv := &http.Server{
		Addr:              appConfig.Addr(),
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		base := "http://localhost:" + strconv.Itoa(appConfig.Port)
		log.Info().
			Str("addr", srv.Addr).
			Str("api_endpoint", base+"/geo/ip?ip=<ip>").
			Str("health_check", base+"/health").
			Str("swagger", base+"/swagger/index.html").
			Msg("Server is running")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	stop()
	log.Info().Dur("timeout", appConfig.ShutdownTimeout).Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Graceful shutdown timed out, closing connections")
		srv.Close()
	}
}
