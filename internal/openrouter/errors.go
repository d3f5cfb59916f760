package openrouter

import (
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"github.com/CodexForgeBR/openrouter-helper/internal/ratelimit"
)

// Kind classifies a failed completion request. Retry-vs-terminal behavior
// and output-file handling dispatch on the kind alone.
type Kind int

const (
	// KindConnectivity covers transport-level failures: dial errors, DNS
	// failures, timeouts. No HTTP status is available.
	KindConnectivity Kind = iota

	// KindRateLimit is an HTTP 429 reply.
	KindRateLimit

	// KindServerTransient is a 500, 502, or 503 reply.
	KindServerTransient

	// KindServerPermanent is any other non-2xx reply.
	KindServerPermanent

	// KindContentInvalid is a reply with no usable choice content.
	KindContentInvalid

	// KindJSONInvalid is a reply whose content failed the requested
	// JSON validation.
	KindJSONInvalid
)

// String returns the kind's name for log messages.
func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindRateLimit:
		return "rate-limit"
	case KindServerTransient:
		return "server-transient"
	case KindServerPermanent:
		return "server-permanent"
	case KindContentInvalid:
		return "content-invalid"
	case KindJSONInvalid:
		return "json-invalid"
	default:
		return "unknown"
	}
}

// transientStatuses are the server statuses treated as retryable.
var transientStatuses = []int{
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
}

// RequestError is the classified error for a failed completion request.
type RequestError struct {
	Kind       Kind
	StatusCode int    // HTTP status; zero for transport-level failures
	Message    string // server-provided or derived diagnostic

	// RateLimit carries advisory reset info for KindRateLimit replies.
	RateLimit *ratelimit.Info

	// Err is the underlying cause, if any.
	Err error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindConnectivity:
		if e.Err != nil {
			return fmt.Sprintf("connection error: %v", e.Err)
		}
		return "connection error"
	case KindRateLimit:
		return fmt.Sprintf("rate limit exceeded (status %d): %s", e.StatusCode, e.Message)
	case KindServerTransient, KindServerPermanent:
		return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Message)
	default:
		return e.Message
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth another attempt.
// Only connectivity failures, rate limits, and transient server
// statuses qualify; everything else is terminal.
func (e *RequestError) Retryable() bool {
	switch e.Kind {
	case KindConnectivity, KindRateLimit, KindServerTransient:
		return true
	default:
		return false
	}
}

// classifyStatus maps a non-2xx HTTP status to its failure kind.
func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case lo.Contains(transientStatuses, code):
		return KindServerTransient
	default:
		return KindServerPermanent
	}
}
