package geo

import (
	"github.com/geoapi/geo-service/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures the /geo/* endpoints.
// Paths match exactly and answer any method.
func SetupRoutes(geoHandler *handler.GeoHandler) chi.Router {
	r := chi.NewRouter()

	// /geo/me
	r.HandleFunc("/me", geoHandler.Me)

	// /geo/ip?ip=<ip>
	r.HandleFunc("/ip", geoHandler.IP)

	return r
}
