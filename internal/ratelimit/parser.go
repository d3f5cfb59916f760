// Package ratelimit parses rate-limit reset signals from API response headers.
//
// The parsed information is advisory: it feeds retry log messages so operators
// can see when the server expects the limit to clear. The retry backoff
// schedule itself never changes based on it.
package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// epochMillisCutoff separates epoch-second values from epoch-millisecond
// values in X-RateLimit-Reset. Anything above it is milliseconds.
const epochMillisCutoff = int64(1e11)

// Info contains parsed rate limit information from a 429 response.
type Info struct {
	// Detected indicates a rate-limit response was seen.
	Detected bool

	// Parseable indicates a reset time could be extracted from the headers.
	Parseable bool

	// ResetAt is the instant the server expects the limit to clear.
	// Only meaningful when Parseable is true.
	ResetAt time.Time
}

// FromHeaders extracts reset information from a rate-limited response's
// headers. It understands Retry-After (delta seconds or HTTP-date) and
// X-RateLimit-Reset (Unix epoch in seconds or milliseconds). Retry-After
// wins when both are present. The returned Info always has Detected=true;
// Parseable is false when neither header yields a usable time.
func FromHeaders(h http.Header, now time.Time) *Info {
	info := &Info{Detected: true}

	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs >= 0 {
			info.Parseable = true
			info.ResetAt = now.Add(time.Duration(secs) * time.Second)
			return info
		}
		if t, err := http.ParseTime(v); err == nil {
			info.Parseable = true
			info.ResetAt = t
			return info
		}
	}

	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil && epoch > 0 {
			info.Parseable = true
			if epoch > epochMillisCutoff {
				info.ResetAt = time.UnixMilli(epoch)
			} else {
				info.ResetAt = time.Unix(epoch, 0)
			}
			return info
		}
	}

	return info
}

// Wait returns the remaining time until ResetAt, or zero if the reset is
// unknown or already past.
func (i *Info) Wait(now time.Time) time.Duration {
	if i == nil || !i.Parseable {
		return 0
	}
	remaining := i.ResetAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// String summarizes the info for log messages.
func (i *Info) String() string {
	if i == nil || !i.Detected {
		return "no rate limit detected"
	}
	if !i.Parseable {
		return "rate limited; reset time unknown"
	}
	remaining := i.Wait(time.Now())
	if remaining == 0 {
		return "rate limited; reset time already passed"
	}
	return fmt.Sprintf("rate limited; resets in %s (%s)",
		remaining.Round(time.Second),
		i.ResetAt.UTC().Format("2006-01-02 15:04:05 MST"))
}
