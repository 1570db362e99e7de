package utils

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound covers both missing and foreign-owned records.
	ErrNotFound = errors.New("record not found")
	ErrRender   = errors.New("render failed")
	ErrStorage  = errors.New("storage failed")
	ErrStore    = errors.New("store failed")
)

// FailureMode tells an operation what to do when its backing store fails.
type FailureMode int

const (
	// FailClosed surfaces the failure to the caller.
	FailClosed FailureMode = iota
	// FailOpen swallows the failure and returns a harmless default.
	FailOpen
)

func (m FailureMode) String() string {
	if m == FailOpen {
		return "fail-open"
	}
	return "fail-closed"
}

// HTTPStatus maps an error from the taxonomy above to a response status.
// Anything outside the taxonomy is a 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the stable client-facing message for err; internal
// detail is never included.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid request"
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrRender):
		return "failed to render document"
	case errors.Is(err, ErrStorage):
		return "failed to store document"
	default:
		return "internal error"
	}
}
