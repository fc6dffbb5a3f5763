// Package normalizer flattens loosely-typed geolocation database records into
// the fixed GeoCity and GeoASN shapes.
//
// Records arrive as decoded by maxminddb into interface values: nested
// map[string]any and []any with numeric leaves of varying Go types. Any
// missing or mistyped link in a path degrades to nil at the leaf.
package normalizer

import (
	"github.com/geoapi/geo-service/internal/models"
)

// DefaultLocales is the name preference used when none is configured
var DefaultLocales = []string{"en", "ko"}

// Normalizer converts raw records using a locale preference for names
type Normalizer struct {
	locales []string
}

// New returns a Normalizer trying locales in order when picking names
func New(locales ...string) *Normalizer {
	if len(locales) == 0 {
		locales = DefaultLocales
	}
	return &Normalizer{locales: locales}
}

// City maps a raw city record. Only an absent record yields nil; an empty one
// yields a GeoCity with every field nil.
func (n *Normalizer) City(raw map[string]any) *models.GeoCity {
	if raw == nil {
		return nil
	}

	return &models.GeoCity{
		Country:          asString(dig(raw, "country", "iso_code")),
		CountryName:      n.name(dig(raw, "country", "names")),
		Region:           n.name(dig(raw, "subdivisions", 0, "names")),
		City:             n.name(dig(raw, "city", "names")),
		Lat:              asFloat(dig(raw, "location", "latitude")),
		Lon:              asFloat(dig(raw, "location", "longitude")),
		Timezone:         asString(dig(raw, "location", "time_zone")),
		AccuracyRadiusKm: asFloat(dig(raw, "location", "accuracy_radius")),
	}
}

// ASN maps a raw ASN record. Only an absent record yields nil.
func (n *Normalizer) ASN(raw map[string]any) *models.GeoASN {
	if raw == nil {
		return nil
	}

	return &models.GeoASN{
		ASN: asUint(raw["autonomous_system_number"]),
		Org: asString(raw["autonomous_system_organization"]),
	}
}

// name picks the first non-empty localized name
func (n *Normalizer) name(names any) *string {
	m, ok := names.(map[string]any)
	if !ok {
		return nil
	}
	for _, locale := range n.locales {
		if s := asString(m[locale]); s != nil {
			return s
		}
	}
	return nil
}

// dig walks string keys through maps and int indexes through slices
func dig(v any, path ...any) any {
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				return nil
			}
			v = m[key]
		case int:
			s, ok := v.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil
			}
			v = s[key]
		default:
			return nil
		}
	}
	return v
}

func asString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func asFloat(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	default:
		return nil
	}
	return &f
}

func asUint(v any) *uint64 {
	var u uint64
	switch x := v.(type) {
	case uint64:
		u = x
	case uint32:
		u = uint64(x)
	case uint16:
		u = uint64(x)
	case uint:
		u = uint64(x)
	case int:
		if x < 0 {
			return nil
		}
		u = uint64(x)
	case int64:
		if x < 0 {
			return nil
		}
		u = uint64(x)
	case float64:
		if x < 0 || x != float64(uint64(x)) {
			return nil
		}
		u = uint64(x)
	default:
		return nil
	}
	return &u
}
