package spotify

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failure against the upstream API. Transient kinds are
// retried locally with bounded backoff before they surface; all other kinds
// are returned to the caller immediately.
type Kind string

const (
	// KindAuthFatal indicates the credential exchange was rejected with a
	// 4xx status, typically bad client credentials. Never retried.
	KindAuthFatal Kind = "auth_fatal"

	// KindAuthTemporary indicates the credential exchange failed for a
	// transient reason (5xx, network error, timeout).
	KindAuthTemporary Kind = "auth_temporary"

	// KindUpstreamAuth indicates an API call failed with 401 even after a
	// forced token refresh and retry.
	KindUpstreamAuth Kind = "upstream_auth"

	// KindRateLimited indicates the upstream rate limit was still in effect
	// after the bounded retry attempts.
	KindRateLimited Kind = "rate_limited"

	// KindInvalidRequest indicates a non-retryable 4xx response, e.g. a
	// malformed parameter or an unknown resource id.
	KindInvalidRequest Kind = "invalid_request"

	// KindUpstreamUnavailable indicates the upstream kept returning 5xx
	// after the bounded retry attempts.
	KindUpstreamUnavailable Kind = "upstream_unavailable"

	// KindTimeout indicates the call exceeded its deadline, including
	// retries of transient network timeouts.
	KindTimeout Kind = "timeout"
)

// retryable kinds are those eligible for local retry with backoff.
var retryableKinds = map[Kind]bool{
	KindAuthTemporary:       true,
	KindRateLimited:         true,
	KindUpstreamUnavailable: true,
	KindTimeout:             true,
}

// Error is a classified failure from the token manager or the API gateway.
type Error struct {
	// Kind is the error classification.
	Kind Kind

	// Endpoint is the upstream path that failed, e.g. "search" or
	// "api/token" for the credential exchange.
	Endpoint string

	// StatusCode is the upstream HTTP status, if a response was received.
	StatusCode int

	// Message carries upstream diagnostics (truncated response body).
	Message string

	// Err is the underlying transport error, if any.
	Err error

	// retryAfter carries the upstream-provided retry delay on rate-limit
	// responses, consumed by the gateway's retry loop.
	retryAfter time.Duration
}

// statusOrZero returns the upstream status code, tolerating a nil receiver.
func (e *Error) statusOrZero() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("spotify: %s", e.Kind)
	if e.Endpoint != "" {
		msg += fmt.Sprintf(" (%s)", e.Endpoint)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error's kind is eligible for retry.
func (e *Error) Retryable() bool {
	return retryableKinds[e.Kind]
}

// KindOf returns the classification of err, or the empty Kind when err is not
// a *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
