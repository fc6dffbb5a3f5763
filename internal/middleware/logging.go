package middleware

import (
	"net/http"
	"time"

	"github.com/geoapi/geo-service/internal/clientip"
	"github.com/geoapi/geo-service/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// LoggingMiddleware logs each request once it completes, tagged with the request ID
// and the client key the limiter and /geo/me would use. 5xx log at error, 4xx at warn.
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			reqLog := log.WithRequestID(middleware.GetReqID(r.Context()))
			client := clientip.Key(r)

			reqLog.Debug().
				Str("method", r.Method).
				Str("uri", r.URL.RequestURI()).
				Str("client", client).
				Msg("Request started")

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			reqLog.WithLevel(levelFor(status)).
				Str("method", r.Method).
				Str("uri", r.URL.RequestURI()).
				Str("client", client).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration_ms", time.Since(start)).
				Msg("Request completed")
		})
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
