package handler

import (
	"net/http"

	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/models"
	"github.com/geoapi/geo-service/internal/response"
	"github.com/geoapi/geo-service/internal/service"
)

// GeoHandler handles HTTP requests for geolocation lookups
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Read request inputs (query parameters, headers)
//   - Call service methods
//   - Hand results and errors to the response envelope
type GeoHandler struct {
	service *service.GeoService
	logger  *logger.Logger
}

// NewGeoHandler creates a new geo handler with the given service
func NewGeoHandler(svc *service.GeoService, log *logger.Logger) *GeoHandler {
	if log == nil {
		log = logger.NewDefault()
	}
	return &GeoHandler{
		service: svc,
		logger:  log.WithComponent("GeoHandler"),
	}
}

// Me handles /geo/me
// @Summary      Geolocate the caller
// @Description  Resolve the client IP taken from cf-connecting-ip, x-real-ip or x-forwarded-for
// @Tags         Geo
// @Produce      json
// @Success      200  {object}  models.OKResponse{data=models.ResolvedGeo}
// @Failure      400  {object}  models.ErrorResponse  "cannot_pick_ip or invalid_ip"
// @Failure      500  {object}  models.ErrorResponse  "internal_error"
// @Router       /geo/me [get]
func (h *GeoHandler) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ResolveClient(r.Header)
	if err != nil {
		response.Fail(w, h.logger, err)
		return
	}
	response.OK(w, result)
}

// IP handles /geo/ip?ip=<ip>
// @Summary      Geolocate an IP address
// @Description  Resolve city and ASN metadata for an IPv4 or IPv6 address
// @Tags         Geo
// @Produce      json
// @Param        ip   query     string  true  "IP address (IPv4 or IPv6)"  example(8.8.8.8)
// @Success      200  {object}  models.OKResponse{data=models.ResolvedGeo}
// @Failure      400  {object}  models.ErrorResponse  "missing_ip or invalid_ip"
// @Failure      500  {object}  models.ErrorResponse  "internal_error"
// @Router       /geo/ip [get]
func (h *GeoHandler) IP(w http.ResponseWriter, r *http.Request) {
	// An empty value counts as absent.
	result, err := h.service.ResolveIP(r.URL.Query().Get("ip"))
	if err != nil {
		response.Fail(w, h.logger, err)
		return
	}
	response.OK(w, result)
}

// Health handles /health
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.OKResponse{data=models.Health}
// @Router       /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, models.Health{OK: true})
}
