// Package apperr defines the error taxonomy shared by all services.
// Services wrap these sentinels with context; the API boundary maps them
// to HTTP status codes. Nothing else should cross the boundary.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated means no or invalid credentials (401).
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means authenticated but out of role/tenant scope (403).
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means a uniqueness constraint was violated (409).
	ErrConflict = errors.New("already exists")
	// ErrNotFound means the referenced record does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrInvalid means malformed or unacceptable input (400).
	ErrInvalid = errors.New("invalid request")
)

// HTTPStatus maps a classified error to its status code. Unclassified
// errors are treated as internal failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
