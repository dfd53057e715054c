package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUpstreamUnavailable   = errors.New("upstream unavailable")
	ErrUpstreamMalformed     = errors.New("upstream response malformed")
)

// Upstream failure kinds reported by the stats feed and chain clients.
const (
	UpstreamKindTimeout     = "timeout"
	UpstreamKindConnection  = "connection"
	UpstreamKindHTTP        = "http"
	UpstreamKindMalformed   = "malformed"
	UpstreamKindCircuitOpen = "circuit_open"
)

// UpstreamError is returned by ingestion and chain paths when a dependency
// fails. Message and Response are surfaced to callers as-is.
type UpstreamError struct {
	Kind     string
	Message  string
	Response any
	Err      error
}

func NewUpstreamError(kind, message string, response any) *UpstreamError {
	sentinel := ErrUpstreamUnavailable
	if kind == UpstreamKindMalformed {
		sentinel = ErrUpstreamMalformed
	}
	return &UpstreamError{Kind: kind, Message: message, Response: response, Err: sentinel}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%v: %s (%s)", e.Err, e.Message, e.Kind)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
