package theoddsapi

import (
	"errors"
	"fmt"
	"strings"
)

// NotAvailableError means the sport is not offered upstream (HTTP 422).
// Suggestions carries alternative sport IDs the caller can present.
type NotAvailableError struct {
	Sport       string
	Suggestions []string
}

func (e *NotAvailableError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("sport %s is not available from the odds provider", e.Sport)
	}
	return fmt.Sprintf("sport %s is not available from the odds provider, try: %s",
		e.Sport, strings.Join(e.Suggestions, ", "))
}

// RateLimitedError means the upstream quota is exhausted (HTTP 429).
// Transient; callers should prefer a stale cached value when they hold one.
type RateLimitedError struct {
	Sport string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("odds provider rate limit exceeded fetching %s", e.Sport)
}

// ConfigurationError means the API credentials were rejected (HTTP 401/403).
// Fatal and operator-correctable; never retried automatically.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("odds provider rejected credentials: %s", e.Message)
}

// TimeoutError means the request did not complete within the client timeout.
// Retryable by the caller.
type TimeoutError struct {
	Sport string
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("odds provider request for %s timed out: %v", e.Sport, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// UpstreamError is the catch-all for other non-2xx or transport failures.
// Retryable with backoff at the caller's discretion.
type UpstreamError struct {
	Sport      string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("odds provider error fetching %s (HTTP %d): %s", e.Sport, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("odds provider error fetching %s: %s", e.Sport, e.Message)
}

// ErrInvalidDays is returned when the requested window is outside 1..30 days.
// Validation belongs at the boundary; the client refuses rather than truncate.
var ErrInvalidDays = errors.New("days must be between 1 and 30")

// AsNotAvailable unwraps err into a NotAvailableError.
func AsNotAvailable(err error) (*NotAvailableError, bool) {
	var e *NotAvailableError
	ok := errors.As(err, &e)
	return e, ok
}

// AsRateLimited unwraps err into a RateLimitedError.
func AsRateLimited(err error) (*RateLimitedError, bool) {
	var e *RateLimitedError
	ok := errors.As(err, &e)
	return e, ok
}

// AsConfiguration unwraps err into a ConfigurationError.
func AsConfiguration(err error) (*ConfigurationError, bool) {
	var e *ConfigurationError
	ok := errors.As(err, &e)
	return e, ok
}

// AsTimeout unwraps err into a TimeoutError.
func AsTimeout(err error) (*TimeoutError, bool) {
	var e *TimeoutError
	ok := errors.As(err, &e)
	return e, ok
}
