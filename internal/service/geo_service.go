package service

import (
	"fmt"
	"net"
	"net/http"

	"github.com/geoapi/geo-service/internal/apierror"
	"github.com/geoapi/geo-service/internal/clientip"
	"github.com/geoapi/geo-service/internal/geodb"
	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/metrics"
	"github.com/geoapi/geo-service/internal/models"
	"github.com/geoapi/geo-service/internal/normalizer"
	"github.com/go-playground/validator/v10"
)

// Error codes returned by the resolver
const (
	CodeMissingIP    = "missing_ip"
	CodeCannotPickIP = "cannot_pick_ip"
	CodeInvalidIP    = "invalid_ip"
)

// Databases hands out the geolocation readers (see geodb.Gateway)
type Databases interface {
	Handles() (geodb.Handles, error)
	Configured() (city, asn bool)
}

// GeoService resolves IP addresses to city and ASN metadata
//
// Responsibilities:
//   - Validate input (IP presence and format)
//   - Look up the city and ASN databases independently
//   - Normalize raw records into the response shape
type GeoService struct {
	databases  Databases
	normalizer *normalizer.Normalizer
	validator  *validator.Validate
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewGeoService creates a new geo service
//
// Parameters:
//   - dbs: database handle provider
//   - norm: record normalizer (optional, defaults to en/ko names)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewGeoService(dbs Databases, norm *normalizer.Normalizer, m *metrics.Metrics, log *logger.Logger) *GeoService {
	if norm == nil {
		norm = normalizer.New()
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &GeoService{
		databases:  dbs,
		normalizer: norm,
		validator:  validator.New(),
		metrics:    m,
		logger:     log.WithComponent("GeoService"),
	}
}

// ResolveIP resolves an explicitly supplied IP (the /geo/ip endpoint)
func (s *GeoService) ResolveIP(ip string) (*models.ResolvedGeo, error) {
	if ip == "" {
		s.countError(CodeMissingIP)
		return nil, apierror.BadRequest(CodeMissingIP, "Missing query param: ip")
	}
	return s.resolve(ip)
}

// ResolveClient resolves the caller's IP taken from proxy headers (the /geo/me endpoint)
func (s *GeoService) ResolveClient(h http.Header) (*models.ResolvedGeo, error) {
	ip, ok := clientip.Pick(h)
	if !ok {
		s.countError(CodeCannotPickIP)
		return nil, apierror.BadRequest(CodeCannotPickIP, "Cannot pick client IP")
	}
	return s.resolve(ip)
}

func (s *GeoService) resolve(ip string) (*models.ResolvedGeo, error) {
	if err := s.validator.Var(ip, "ip"); err != nil {
		s.logger.Debug().Str("ip", ip).Msg("Invalid IP address format")
		s.countError(CodeInvalidIP)
		return nil, apierror.BadRequest(CodeInvalidIP, "Invalid IP address")
	}
	parsed := net.ParseIP(ip)

	handles, err := s.databases.Handles()
	if err != nil {
		s.countError("database")
		return nil, err
	}

	cityRaw, err := s.lookup(geodb.City, handles.City, parsed)
	if err != nil {
		return nil, err
	}
	asnRaw, err := s.lookup(geodb.ASN, handles.ASN, parsed)
	if err != nil {
		return nil, err
	}

	hasCity, hasASN := s.databases.Configured()
	result := &models.ResolvedGeo{
		IP:  ip,
		Geo: s.normalizer.City(cityRaw),
		ASN: s.normalizer.ASN(asnRaw),
		Meta: models.ResolvedMeta{
			HasCityDB: hasCity,
			HasASNDB:  hasASN,
		},
	}

	s.logger.Debug().
		Str("ip", ip).
		Bool("geo", result.Geo != nil).
		Bool("asn", result.ASN != nil).
		Msg("IP resolved")

	return result, nil
}

// lookup queries one database; a nil reader means "no record", not an error
func (s *GeoService) lookup(name string, reader geodb.Reader, ip net.IP) (map[string]any, error) {
	if reader == nil {
		s.countLookup(name, "skipped")
		return nil, nil
	}

	raw, err := reader.Lookup(ip)
	if err != nil {
		s.logger.Error().Err(err).Str("database", name).Str("ip", ip.String()).Msg("Database lookup failed")
		s.countError("lookup")
		return nil, fmt.Errorf("lookup %s database: %w", name, err)
	}

	if raw == nil {
		s.countLookup(name, "miss")
	} else {
		s.countLookup(name, "hit")
	}
	return raw, nil
}

func (s *GeoService) countLookup(database, result string) {
	if s.metrics != nil {
		s.metrics.GeoLookupsTotal.WithLabelValues(database, result).Inc()
	}
}

func (s *GeoService) countError(errorType string) {
	if s.metrics != nil {
		s.metrics.GeoLookupsErrors.WithLabelValues(errorType).Inc()
	}
}
