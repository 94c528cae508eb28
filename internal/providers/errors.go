package providers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrRemoteService marks any failure reported by, or while talking to, an upstream API.
	ErrRemoteService = errors.New("remote service failure")
	// ErrTeamNotFound is returned when a lookup by short name yields no team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrProviderUnavailable is returned when no provider is configured for a capability.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ServiceError captures a non-success response from an upstream provider.
type ServiceError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "upstream request failed"
	}
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRemoteService) match without wrapping the sentinel.
func (e *ServiceError) Is(target error) bool { return target == ErrRemoteService }

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

func (e *RateLimitError) Is(target error) bool { return target == ErrRemoteService }

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// AsServiceError attempts to unwrap an error into a ServiceError.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// TransportError wraps a failure that happened before a response was read
// (dial, timeout, decode) so callers can match it with ErrRemoteService.
func TransportError(provider string, err error) error {
	return &ServiceError{Provider: provider, Err: err}
}

// ResponseError builds the error for a non-200 response. 429 maps to a
// RateLimitError carrying Retry-After; everything else to a ServiceError
// with a short body excerpt. The body is drained but not closed.
func ResponseError(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    provider + ": rate limited",
		}
	}
	if msg == "" {
		msg = "unexpected status"
	}
	return &ServiceError{Provider: provider, StatusCode: resp.StatusCode, Message: msg}
}

func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
