// Package provider defines the error classification shared by all upstream
// adapters. An adapter call either succeeds with a well-formed result or
// fails with a *provider.Error carrying one of the kinds below; callers
// branch on the kind, never on error message text.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies an upstream failure.
type Kind string

const (
	// KindRejectedInput means the upstream rejected our input as invalid.
	// Not retried and not routed to a fallback.
	KindRejectedInput Kind = "rejected_input"

	// KindUnavailable covers timeouts, connection failures, and non-success
	// status codes. Eligible for a fallback attempt.
	KindUnavailable Kind = "unavailable"

	// KindMalformed means the upstream answered with something that does not
	// parse into the expected shape, e.g. an HTML error page where JSON was
	// expected. Treated like KindUnavailable for fallback purposes.
	KindMalformed Kind = "malformed_response"
)

// Error is a classified upstream failure.
type Error struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a classified error in the style of fmt.Errorf.
func Errorf(kind Kind, providerName, format string, args ...any) *Error {
	return &Error{Kind: kind, Provider: providerName, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err from the named provider. Timeouts and cancelled
// contexts become KindUnavailable; already-classified errors pass through.
func Wrap(providerName string, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}

	kind := KindUnavailable
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindUnavailable
	case errors.As(err, &netErr):
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Provider: providerName, Err: err}
}

// KindOf returns the classification of err, or "" when err carries none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Retryable reports whether a fallback provider should be tried after err.
// Input rejections are final; everything classified as unavailable or
// malformed is worth one more attempt elsewhere.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindUnavailable, KindMalformed:
		return true
	default:
		return false
	}
}
