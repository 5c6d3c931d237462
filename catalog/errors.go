package catalog

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/imovie-web/internal/errors"
)

var (
	ErrNotFound     = errors.ErrNotFound
	ErrUnauthorized = errors.ErrUnauthorized
	ErrConflict     = errors.ErrConflict
	ErrInvalid      = errors.ErrInvalidRequest
	ErrUnavailable  = errors.ErrUnavailable
)

// APIError is returned for any non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog api: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match the status class with errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusConflict:
		return ErrConflict
	case e.StatusCode == http.StatusBadRequest:
		return ErrInvalid
	case e.StatusCode >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}
