package corrector

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput signals a check of blank text; no request was sent.
	ErrEmptyInput = errors.New("corrector: empty input")
	// ErrTimeout signals that the request deadline expired.
	ErrTimeout = errors.New("corrector: timeout")
)

// User-facing messages. Diagnostics never reach the output region.
const (
	MsgEmptyInput   = "Please enter a word or sentence."
	MsgContactError = "⚠️ Error contacting server. Please try again."
	MsgRenderError  = "⚠️ Could not display the result. Please try again."
)

// ValidationError is a local rejection of the input.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return "corrector: invalid input: " + e.Reason }
func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError is a failed round-trip: network error, non-2xx status,
// timeout, or a body that does not match the response schema.
type TransportError struct {
	Status int    // HTTP status, 0 when no response arrived
	Reason string // "timeout", "canceled", "status", "request", "invalid response"
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Err == nil:
		return fmt.Sprintf("corrector: server error: %d", e.Status)
	case e.Status != 0:
		return fmt.Sprintf("corrector: %s (status %d): %v", e.Reason, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("corrector: %s: %v", e.Reason, e.Err)
	}
	return "corrector: " + e.Reason
}

func (e *TransportError) Unwrap() error { return e.Err }

// RenderError is a payload that could not be displayed. When Index >= 0
// only that entry of Section was affected.
type RenderError struct {
	Section string
	Index   int
	Err     error
}

func (e *RenderError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("corrector: render %s[%d]: %v", e.Section, e.Index, e.Err)
	}
	return fmt.Sprintf("corrector: render %s: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// UserMessage maps an error from Check or SubmitCheck onto the short text
// shown to users.
func UserMessage(err error) string {
	var (
		ve *ValidationError
		re *RenderError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return MsgEmptyInput
	case errors.As(err, &re):
		return MsgRenderError
	}
	return MsgContactError
}
