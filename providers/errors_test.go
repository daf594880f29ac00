package providers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphgen/glyphgen/retry"
)

func TestAPIErrorRecoverability(t *testing.T) {
	for _, code := range []int{
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		520,
	} {
		err := NewError(code, "upstream")
		assert.False(t, retry.IsPermanent(err), "status %d", code)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsRecoverable(), "status %d", code)
	}

	for _, code := range []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
	} {
		err := NewError(code, "denied")
		assert.True(t, retry.IsPermanent(err), "status %d", code)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, code, apiErr.StatusCode())
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := NewError(http.StatusUnauthorized, "bad key")
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad key")
	assert.False(t, errors.Is(err, ErrNoActiveProvider))
}
