package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geoapi/geo-service/internal/geodb"
	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/models"
	"github.com/geoapi/geo-service/internal/response"
	"github.com/geoapi/geo-service/internal/service"
)

// envelope decodes either kind of response
type envelope struct {
	OK    bool               `json:"ok"`
	Data  models.ResolvedGeo `json:"data"`
	Error models.ErrorBody   `json:"error"`
	Meta  models.Meta        `json:"meta"`
}

func newTestHandler(t *testing.T, paths geodb.Paths, openErr error) *GeoHandler {
	t.Helper()

	opener := geodb.NewMockOpener(map[string]geodb.Reader{
		"city.mmdb": geodb.NewMockReader(map[string]map[string]any{
			"8.8.8.8": {"country": map[string]any{"iso_code": "US"}},
		}),
		"asn.mmdb": geodb.NewMockReader(map[string]map[string]any{
			"8.8.8.8": {"autonomous_system_number": uint64(15169), "autonomous_system_organization": "GOOGLE"},
		}),
	})
	if openErr != nil {
		opener.Errors["city.mmdb"] = openErr
	}

	gw := geodb.NewGateway(paths, opener.Open, nil, logger.NewNop())
	svc := service.NewGeoService(gw, nil, nil, logger.NewNop())
	return NewGeoHandler(svc, logger.NewNop())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Meta.TS == "" {
		t.Error("expected meta.ts on every response")
	}
	return body
}

// TestGeoHandler_IP_Success tests a successful lookup
func TestGeoHandler_IP_Success(t *testing.T) {
	h := newTestHandler(t, geodb.Paths{City: "city.mmdb", ASN: "asn.mmdb"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/geo/ip?ip=8.8.8.8", nil)
	rec := httptest.NewRecorder()

	h.IP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != response.ContentType {
		t.Errorf("expected Content-Type %s, got %s", response.ContentType, ct)
	}

	body := decode(t, rec)
	if !body.OK {
		t.Error("expected ok=true")
	}
	if body.Data.Geo == nil || *body.Data.Geo.Country != "US" {
		t.Errorf("unexpected geo: %+v", body.Data.Geo)
	}
	if body.Data.ASN == nil || *body.Data.ASN.ASN != 15169 {
		t.Errorf("unexpected asn: %+v", body.Data.ASN)
	}
}

// TestGeoHandler_IP_MissingParameter tests missing and empty ip parameters
func TestGeoHandler_IP_MissingParameter(t *testing.T) {
	tests := []string{"/geo/ip", "/geo/ip?ip=", "/geo/ip?other=1"}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			h := newTestHandler(t, geodb.Paths{City: "city.mmdb"}, nil)

			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()

			h.IP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
			body := decode(t, rec)
			if body.OK || body.Error.Code != "missing_ip" {
				t.Errorf("expected missing_ip, got %+v", body.Error)
			}
		})
	}
}

// TestGeoHandler_IP_InvalidIP tests IP syntax rejection
func TestGeoHandler_IP_InvalidIP(t *testing.T) {
	h := newTestHandler(t, geodb.Paths{City: "city.mmdb"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/geo/ip?ip=not-an-ip", nil)
	rec := httptest.NewRecorder()

	h.IP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body.Error.Code != "invalid_ip" {
		t.Errorf("expected invalid_ip, got %s", body.Error.Code)
	}
}

// TestGeoHandler_IP_OpenFailure tests that database open errors stay hidden
func TestGeoHandler_IP_OpenFailure(t *testing.T) {
	h := newTestHandler(t, geodb.Paths{City: "city.mmdb"}, errors.New("mmap: cannot allocate memory"))

	req := httptest.NewRequest(http.MethodGet, "/geo/ip?ip=8.8.8.8", nil)
	rec := httptest.NewRecorder()

	h.IP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body.Error.Code != "internal_error" || body.Error.Message != "Internal Error" {
		t.Errorf("expected generic internal error, got %+v", body.Error)
	}
}

// TestGeoHandler_Me tests header-derived lookups
func TestGeoHandler_Me(t *testing.T) {
	h := newTestHandler(t, geodb.Paths{ASN: "asn.mmdb"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/geo/me", nil)
	req.Header.Set("CF-Connecting-IP", "8.8.8.8")
	req.Header.Set("X-Forwarded-For", "1.1.1.1")
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body.Data.IP != "8.8.8.8" {
		t.Errorf("expected ip 8.8.8.8, got %s", body.Data.IP)
	}
	if body.Data.Geo != nil {
		t.Error("expected nil geo without a city database")
	}
	if body.Data.Meta.HasCityDB || !body.Data.Meta.HasASNDB {
		t.Errorf("unexpected meta: %+v", body.Data.Meta)
	}
}

// TestGeoHandler_Me_NoHeaders tests cannot_pick_ip
func TestGeoHandler_Me_NoHeaders(t *testing.T) {
	h := newTestHandler(t, geodb.Paths{ASN: "asn.mmdb"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/geo/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body.Error.Code != "cannot_pick_ip" {
		t.Errorf("expected cannot_pick_ip, got %s", body.Error.Code)
	}
}

// TestHealth tests the health payload
func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		OK   bool          `json:"ok"`
		Data models.Health `json:"data"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if !body.OK || !body.Data.OK {
		t.Errorf("unexpected health body: %+v", body)
	}
}
