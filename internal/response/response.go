// Package response writes the uniform {ok, data|error, meta} JSON envelope.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/geoapi/geo-service/internal/apierror"
	"github.com/geoapi/geo-service/internal/logger"
	"github.com/geoapi/geo-service/internal/models"
)

// ContentType is set on every envelope
const ContentType = "application/json; charset=utf-8"

// TimeFormat is ISO-8601 in UTC with millisecond precision
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// now is replaced in tests
var now = time.Now

// Timestamp returns the current instant formatted for meta.ts
func Timestamp() string {
	return now().UTC().Format(TimeFormat)
}

// OK writes a 200 success envelope around data
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, models.OKResponse{
		OK:   true,
		Data: data,
		Meta: models.Meta{TS: Timestamp()},
	})
}

// Fail writes a failure envelope for err.
// Errors that are not *apierror.Error become a 500 internal_error; their cause is
// logged and never written to the client.
func Fail(w http.ResponseWriter, log *logger.Logger, err error) {
	apiErr := apierror.From(err)

	if log != nil {
		if apiErr.Status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("code", apiErr.Code).Msg("Request failed")
		} else {
			log.Debug().Str("code", apiErr.Code).Int("status", apiErr.Status).Msg("Request rejected")
		}
	}

	writeJSON(w, apiErr.Status, models.ErrorResponse{
		OK: false,
		Error: models.ErrorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
		Meta: models.Meta{TS: Timestamp()},
	})
}

// NotFound writes the 404 envelope for unmatched paths
func NotFound(w http.ResponseWriter, r *http.Request) {
	Fail(w, nil, apierror.NotFound("not_found", "Not Found"))
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		// Only reachable with non-encodable details; headers are not written yet.
		statusCode = http.StatusInternalServerError
		data, _ = json.Marshal(models.ErrorResponse{
			Error: models.ErrorBody{Code: apierror.CodeInternal, Message: apierror.MessageInternal},
			Meta:  models.Meta{TS: Timestamp()},
		})
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(statusCode)
	w.Write(data)
}
