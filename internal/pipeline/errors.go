package pipeline

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/courier/internal/extract"
)

// ErrUnsupportedFormat reports input whose format neither the oracle nor the
// heuristics could resolve to a known processing path.
var ErrUnsupportedFormat = errors.New("Unsupported format")

// ExtractionError carries the literal sentinel string a text extractor
// produced. It short-circuits the pipeline before any validator runs.
type ExtractionError struct {
	Sentinel string
}

func (e *ExtractionError) Error() string {
	return e.Sentinel
}

// MapHTTPStatus maps pipeline errors to appropriate HTTP status codes.
// Validation findings never reach this path: anomalies and missing fields
// are part of a successful result.
func MapHTTPStatus(err error) int {
	if errors.Is(err, extract.ErrMalformedJSON) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		return http.StatusUnsupportedMediaType
	}

	var extraction *ExtractionError
	if errors.As(err, &extraction) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
