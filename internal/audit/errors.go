package audit

import (
	"errors"
	"net/http"
)

// Domain errors for audit log operations.
var (
	ErrNotFound  = errors.New("audit entry not found")
	ErrDuplicate = errors.New("audit entry already exists")
)

// MapHTTPStatus maps audit domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
