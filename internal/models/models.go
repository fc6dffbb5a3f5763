package models

// GeoCity is the flat city-level view of a city database record.
// Every field is independently optional: nil means the database had no data.
type GeoCity struct {
	Country          *string  `json:"country"`     // ISO 3166-1 alpha-2 code
	CountryName      *string  `json:"countryName"` // localized country name
	Region           *string  `json:"region"`      // first-level subdivision name
	City             *string  `json:"city"`
	Lat              *float64 `json:"lat"`
	Lon              *float64 `json:"lon"`
	Timezone         *string  `json:"timezone"`
	AccuracyRadiusKm *float64 `json:"accuracyRadiusKm"`
}

// GeoASN is the network-ownership view of an ASN database record
type GeoASN struct {
	ASN *uint64 `json:"asn"`
	Org *string `json:"org"`
}

// ResolvedMeta reports which databases are configured (not whether they matched)
type ResolvedMeta struct {
	HasCityDB bool `json:"hasCityDb"`
	HasASNDB  bool `json:"hasAsnDb"`
}

// ResolvedGeo is the payload of /geo/me and /geo/ip
type ResolvedGeo struct {
	IP   string       `json:"ip"`
	Geo  *GeoCity     `json:"geo"`
	ASN  *GeoASN      `json:"asn"`
	Meta ResolvedMeta `json:"meta"`
}

// Health is the payload of /health
type Health struct {
	OK bool `json:"ok"`
}

// Meta is attached to every response envelope
type Meta struct {
	TS string `json:"ts"` // ISO-8601 instant, set at write time
}

// OKResponse is the success envelope
type OKResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorBody is the error part of a failure envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}
