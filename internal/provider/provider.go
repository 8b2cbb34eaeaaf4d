// Package provider implements the upstream clients for currency quotes and news.
package provider

import (
	"context"
	"encoding/json"
	"errors"
)

// RatesProvider defines an interface for fetching a real-time exchange rate.
// Implementations perform exactly one upstream request and never retry.
type RatesProvider interface {
	GetRate(ctx context.Context, base, quote string) (float64, error)
}

// NewsSource fetches the current headline list from a news API.
type NewsSource interface {
	Latest(ctx context.Context) (*NewsResult, error)
}

// NewsResult is the passthrough body of a successful news request.
type NewsResult struct {
	Status   string            `json:"status"`
	Articles []json.RawMessage `json:"articles"`
}

// Failure kinds reported by upstream clients.
var (
	ErrRateLimited = errors.New("rate_limit")
	ErrBadResponse = errors.New("bad_response")
	ErrTransport   = errors.New("transport_error")
)

// Error is a classified upstream failure. Kind is one of the Err* sentinels
// and Message is safe to show to API clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func rateLimited(msg string) error {
	return &Error{Kind: ErrRateLimited, Message: msg}
}

func badResponse(msg string, cause error) error {
	return &Error{Kind: ErrBadResponse, Message: msg, Err: cause}
}

func transportFailure(msg string, cause error) error {
	return &Error{Kind: ErrTransport, Message: msg, Err: cause}
}

// Message returns the client-facing message carried by err, or fallback.
func Message(err error, fallback string) string {
	var pe *Error
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return fallback
}
