// Package web provides small HTTP fetch helpers shared by the icon
// generator and the provider clients.
package web

import (
	"fmt"
	"net/http"
)

// FetchError is a failed HTTP fetch, carrying the response status so
// callers can decide whether to retry.
type FetchError struct {
	StatusCode int
	Err        error
}

// NewFetchError wraps err with the response status code.
func NewFetchError(statusCode int, err error) *FetchError {
	return &FetchError{StatusCode: statusCode, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed with status code %d: %s", e.StatusCode, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether the fetch is worth retrying. Rate
// limiting and transient server-side failures are; client errors and
// 404s are not.
func (e *FetchError) IsRecoverable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
