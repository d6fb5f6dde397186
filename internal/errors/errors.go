// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrUpstreamUnavailable indicates a university API call failed with a
	// network error, timeout or non-2xx status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedPayload indicates an upstream response could not be decoded
	// into the expected shape. Recovered by treating the source as empty.
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrNoMatch indicates neither a structural intent nor an acceptable
	// FAQ/oracle answer was found for a query.
	ErrNoMatch = errors.New("no match")

	// ErrNoListPresent indicates a numeric follow-up arrived with no prior
	// programme list in the session.
	ErrNoListPresent = errors.New("no list present")

	// ErrOutOfRange indicates a numeric follow-up index falls outside the
	// last displayed programme list.
	ErrOutOfRange = errors.New("index out of range")

	// ErrRateLimitExceeded indicates a session exceeded its request budget.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrOracleUnavailable indicates all configured completion providers
	// failed for a turn.
	ErrOracleUnavailable = errors.New("oracle unavailable")
)

// UpstreamError carries the endpoint and HTTP status of a failed university
// API call. It unwraps to ErrUpstreamUnavailable so callers can test the
// category without inspecting fields.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error (endpoint=%s, status=%d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream error (endpoint=%s): %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError wrapping ErrUpstreamUnavailable.
func NewUpstreamError(endpoint string, statusCode int, err error) *UpstreamError {
	if err == nil {
		err = ErrUpstreamUnavailable
	} else if !errors.Is(err, ErrUpstreamUnavailable) {
		err = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return &UpstreamError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}
