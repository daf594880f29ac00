package providers

import (
	"fmt"
	"net/http"

	"github.com/glyphgen/glyphgen/retry"
)

// APIError is a non-2xx response from a provider endpoint.
type APIError struct {
	statusCode int
	body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider api error (status %d): %s", e.statusCode, e.body)
}

func (e *APIError) StatusCode() int {
	return e.statusCode
}

// IsRecoverable reports whether the response is worth retrying: rate
// limiting, server-side failures, and the 520 some proxies return for
// origin errors.
func (e *APIError) IsRecoverable() bool {
	switch e.statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		520:
		return true
	}
	return false
}

// NewError wraps a provider response as an APIError. Unrecoverable
// statuses are marked permanent so retry.Do gives up immediately.
func NewError(statusCode int, body string) error {
	err := &APIError{statusCode: statusCode, body: body}
	if err.IsRecoverable() {
		return err
	}
	return retry.MarkPermanent(err)
}
