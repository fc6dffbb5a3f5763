// Package geodb owns the city and ASN database readers.
//
// Readers are opened lazily on first use, at most once per Gateway. Concurrent
// first callers block on the same open and observe the same outcome. A failed
// open is final: every later call returns the same error without retrying.
package geodb

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/metrics"
)

// Database names used in logs and metric labels
const (
	City = "city"
	ASN  = "asn"
)

// Reader is an opened geolocation database.
// Lookup returns a nil record, not an error, when the IP has no entry.
type Reader interface {
	Lookup(ip net.IP) (map[string]any, error)
	Close() error
}

// Opener opens the database stored at path
type Opener func(path string) (Reader, error)

// Paths locates the databases. An empty path leaves that database unconfigured.
type Paths struct {
	City string
	ASN  string
}

// Handles are the opened readers; a nil field means the database is not configured.
type Handles struct {
	City Reader
	ASN  Reader
}

// Gateway lazily opens and then hands out the database readers
type Gateway struct {
	paths   Paths
	open    Opener
	metrics *metrics.Metrics
	logger  *logger.Logger

	once    sync.Once
	handles Handles
	err     error
}

// NewGateway creates a gateway; nothing is opened until Handles is called.
//
// Parameters:
//   - paths: database file locations
//   - open: opener to use (nil means OpenMaxmind)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewGateway(paths Paths, open Opener, m *metrics.Metrics, log *logger.Logger) *Gateway {
	if open == nil {
		open = OpenMaxmind
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Gateway{
		paths:   paths,
		open:    open,
		metrics: m,
		logger:  log.WithComponent("GeoDB"),
	}
}

// Configured reports which databases have a path
func (g *Gateway) Configured() (city, asn bool) {
	return g.paths.City != "", g.paths.ASN != ""
}

// Handles returns the readers, opening them on the first call
func (g *Gateway) Handles() (Handles, error) {
	g.once.Do(g.init)
	return g.handles, g.err
}

func (g *Gateway) init() {
	city, err := g.openOne(City, g.paths.City)
	if err != nil {
		g.err = err
		return
	}

	asn, err := g.openOne(ASN, g.paths.ASN)
	if err != nil {
		if city != nil {
			city.Close()
			g.setAvailable(City, false)
		}
		g.err = err
		return
	}

	g.handles = Handles{City: city, ASN: asn}
}

func (g *Gateway) openOne(name, path string) (Reader, error) {
	if path == "" {
		g.logger.Info().Str("database", name).Msg("Database not configured")
		return nil, nil
	}

	reader, err := g.open(path)
	if err != nil {
		g.logger.Error().Err(err).Str("database", name).Str("path", path).Msg("Failed to open database")
		g.countOpen(name, "error")
		return nil, fmt.Errorf("geodb: open %s database: %w", name, err)
	}

	event := g.logger.Info().Str("database", name).Str("path", path)
	if typed, ok := reader.(interface{ DatabaseType() string }); ok {
		event = event.Str("type", typed.DatabaseType())
	}
	event.Msg("Database opened")

	g.countOpen(name, "success")
	g.setAvailable(name, true)
	return reader, nil
}

func (g *Gateway) countOpen(name, result string) {
	if g.metrics != nil {
		g.metrics.DatabaseOpensTotal.WithLabelValues(name, result).Inc()
	}
}

func (g *Gateway) setAvailable(name string, ok bool) {
	if g.metrics == nil {
		return
	}
	v := 0.0
	if ok {
		v = 1
	}
	g.metrics.DatabaseAvailable.WithLabelValues(name).Set(v)
}

// Close releases opened readers. It is meant for process shutdown only:
// the gateway is not reopened afterwards.
func (g *Gateway) Close() error {
	// Prevent a late first request from opening after shutdown.
	g.once.Do(func() { g.err = errors.New("geodb: gateway closed") })

	var errs []error
	if g.handles.City != nil {
		errs = append(errs, g.handles.City.Close())
	}
	if g.handles.ASN != nil {
		errs = append(errs, g.handles.ASN.Close())
	}
	return errors.Join(errs...)
}
