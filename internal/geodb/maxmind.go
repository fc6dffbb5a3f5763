package geodb

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// ErrInvalidDatabase is returned when a path does not hold a readable mmdb file
var ErrInvalidDatabase = errors.New("invalid database file")

// MaxmindReader adapts a maxminddb.Reader to Reader, decoding records
// without a fixed schema.
type MaxmindReader struct {
	reader *maxminddb.Reader
}

// OpenMaxmind opens an mmdb file (GeoLite2/GeoIP2 City or ASN, or compatible)
func OpenMaxmind(path string) (Reader, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) || errors.As(err, &maxminddb.InvalidDatabaseError{}) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDatabase, err)
		}
		return nil, fmt.Errorf("opening maxmind reader from location: %w", err)
	}
	return &MaxmindReader{reader: reader}, nil
}

// Lookup returns the raw record for ip, or nil when the database has no entry
func (m *MaxmindReader) Lookup(ip net.IP) (map[string]any, error) {
	var record map[string]any

	_, found, err := m.reader.LookupNetwork(ip, &record)
	if err != nil {
		return nil, fmt.Errorf("reading record for ip: %w", err)
	}
	if !found {
		return nil, nil
	}
	return record, nil
}

// DatabaseType reports the metadata type, e.g. "GeoLite2-City"
func (m *MaxmindReader) DatabaseType() string {
	return m.reader.Metadata.DatabaseType
}

func (m *MaxmindReader) Close() error {
	return m.reader.Close()
}
