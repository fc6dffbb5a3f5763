package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/response"
)

// RecoverMiddleware turns a handler panic into a 500 internal_error envelope.
// The panic value and stack are logged, never sent to the client.
func RecoverMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error().
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from panic")

				response.Fail(w, log, fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
