package openrouter

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKind_String tests the string form of each error kind.
func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindConnectivity, "connectivity"},
		{KindRateLimit, "rate-limit"},
		{KindServerTransient, "server-transient"},
		{KindServerPermanent, "server-permanent"},
		{KindContentInvalid, "content-invalid"},
		{KindJSONInvalid, "json-invalid"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

// TestRequestError_Error tests the formatted message for each kind.
func TestRequestError_Error(t *testing.T) {
	t.Run("connectivity wraps the transport error", func(t *testing.T) {
		reqErr := &RequestError{
			Kind: KindConnectivity,
			Err:  errors.New("dial tcp: connection refused"),
		}
		assert.Equal(t, "connection error: dial tcp: connection refused", reqErr.Error())
	})

	t.Run("rate limit includes status and message", func(t *testing.T) {
		reqErr := &RequestError{
			Kind:       KindRateLimit,
			StatusCode: http.StatusTooManyRequests,
			Message:    "slow down",
		}
		assert.Equal(t, "rate limit exceeded (status 429): slow down", reqErr.Error())
	})

	t.Run("server errors use the API error format", func(t *testing.T) {
		tests := []struct {
			kind     Kind
			status   int
			message  string
			expected string
		}{
			{KindServerTransient, 502, "bad gateway", "API error: 502 - bad gateway"},
			{KindServerPermanent, 404, "not found", "API error: 404 - not found"},
		}

		for _, tt := range tests {
			reqErr := &RequestError{Kind: tt.kind, StatusCode: tt.status, Message: tt.message}
			assert.Equal(t, tt.expected, reqErr.Error())
		}
	})

	t.Run("validation errors return the message verbatim", func(t *testing.T) {
		reqErr := &RequestError{
			Kind:    KindContentInvalid,
			Message: "Invalid API response: no choices found",
		}
		assert.Equal(t, "Invalid API response: no choices found", reqErr.Error())

		reqErr = &RequestError{
			Kind:    KindJSONInvalid,
			Message: "Invalid JSON response",
		}
		assert.Equal(t, "Invalid JSON response", reqErr.Error())
	})
}

// TestRequestError_Unwrap tests unwrapping the underlying cause.
func TestRequestError_Unwrap(t *testing.T) {
	t.Run("returns the wrapped error", func(t *testing.T) {
		cause := errors.New("underlying")
		reqErr := &RequestError{Kind: KindConnectivity, Err: cause}
		assert.Equal(t, cause, errors.Unwrap(reqErr))
		assert.True(t, errors.Is(reqErr, cause))
	})

	t.Run("returns nil when there is no cause", func(t *testing.T) {
		reqErr := &RequestError{Kind: KindServerPermanent}
		assert.Nil(t, errors.Unwrap(reqErr))
	})
}

// TestRequestError_Retryable tests retry classification by kind.
func TestRequestError_Retryable(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{KindConnectivity, true},
		{KindRateLimit, true},
		{KindServerTransient, true},
		{KindServerPermanent, false},
		{KindContentInvalid, false},
		{KindJSONInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			reqErr := &RequestError{Kind: tt.kind}
			assert.Equal(t, tt.retryable, reqErr.Retryable())
		})
	}
}

// TestClassifyStatus tests mapping HTTP status codes to error kinds.
func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected Kind
	}{
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusInternalServerError, KindServerTransient},
		{http.StatusBadGateway, KindServerTransient},
		{http.StatusServiceUnavailable, KindServerTransient},
		{http.StatusBadRequest, KindServerPermanent},
		{http.StatusUnauthorized, KindServerPermanent},
		{http.StatusForbidden, KindServerPermanent},
		{http.StatusNotFound, KindServerPermanent},
		{http.StatusGatewayTimeout, KindServerPermanent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyStatus(tt.status))
		})
	}
}

// TestRequestError_ErrorsAs tests that wrapped request errors stay matchable.
func TestRequestError_ErrorsAs(t *testing.T) {
	reqErr := &RequestError{Kind: KindRateLimit, StatusCode: 429, Message: "limited"}
	wrapped := fmt.Errorf("attempt 3 failed: %w", reqErr)

	var target *RequestError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, KindRateLimit, target.Kind)
	assert.Equal(t, 429, target.StatusCode)
}
