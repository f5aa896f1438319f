package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrMissingCredential is returned before any network attempt when no API
// key is configured.
var ErrMissingCredential = errors.New("provider credential is not configured")

// ErrMalformedResponse is returned when a provider reply yields no usable
// text in any recognized shape.
var ErrMalformedResponse = errors.New("provider response contained no usable text")

// ErrEmptyInput is returned when translation is requested for empty text.
var ErrEmptyInput = errors.New("no text provided for translation")

// CallError describes a failed provider round trip. The Detail field carries
// the extracted provider message only, never the raw payload.
type CallError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

// Error formats the failure for logs.
func (e *CallError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: provider unreachable: %v", e.Op, e.Err)
}

// Unwrap exposes the transport error for errors.Is / errors.As.
func (e *CallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Timeout reports whether the call failed by exceeding its deadline.
func (e *CallError) Timeout() bool {
	if e == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
