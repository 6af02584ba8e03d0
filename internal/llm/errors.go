package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindUnavailable covers outages, network failures and open circuits.
	KindUnavailable Kind = iota
	// KindRateLimited means the provider asked us to slow down.
	KindRateLimited
	// KindInvalidResponse means the output was not JSON matching the schema.
	KindInvalidResponse
	// KindTruncated means generation stopped at the token budget.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is returned by providers and middleware for every upstream failure.
type Error struct {
	Kind     Kind
	Provider string

	// RetryAfter is the server-suggested wait for KindRateLimited.
	RetryAfter time.Duration

	// Content holds the offending output for KindInvalidResponse.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		msg = fmt.Sprintf("%s (retry after %s)", msg, e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsUpstream reports whether err came from a provider rather than from
// the caller's context.
func IsUpstream(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// Retryable reports whether another attempt could succeed. Truncation
// and caller cancellation are final.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	return kind != KindTruncated
}

func invalidResponse(provider string, content json.RawMessage, format string, args ...any) *Error {
	return &Error{
		Kind:     KindInvalidResponse,
		Provider: provider,
		Content:  content,
		Err:      fmt.Errorf(format, args...),
	}
}

// statusError classifies an HTTP status returned by a provider SDK.
func statusError(provider string, status int, retryAfter time.Duration, err error) *Error {
	kind := KindUnavailable
	if status == http.StatusTooManyRequests {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Provider: provider, RetryAfter: retryAfter, Err: err}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
