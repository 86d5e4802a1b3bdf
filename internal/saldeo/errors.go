package saldeo

import "fmt"

// SigningError reports a failure while building a request signature.
// Signing is deterministic, so this is defensive only.
type SigningError struct {
	Message string
	Cause   error
}

func (e *SigningError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("signing failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("signing failed: %s", e.Message)
}

func (e *SigningError) Unwrap() error {
	return e.Cause
}

// EncodingError reports a payload compression or encoding failure.
type EncodingError struct {
	Message string
	Cause   error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payload encoding failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("payload encoding failed: %s", e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// NewEncodingError creates a new encoding error
func NewEncodingError(message string, cause error) *EncodingError {
	return &EncodingError{Message: message, Cause: cause}
}

// TransportError reports a network failure, timeout, or non-2xx status.
// Body carries the provider's raw response when one was received; the
// provider reports its own error codes inside that XML.
type TransportError struct {
	Operation  string
	StatusCode int
	Body       []byte
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: transport failure (%v)", e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a new transport error
func NewTransportError(operation string, statusCode int, body []byte, cause error) *TransportError {
	return &TransportError{Operation: operation, StatusCode: statusCode, Body: body, Cause: cause}
}

// MalformedResponseError reports a provider response that is not well-formed XML.
type MalformedResponseError struct {
	Operation string
	Cause     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed provider response (%v)", e.Operation, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a successful listing query with no entry matching
// the requested document.
type NotFoundError struct {
	Number string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("invoice %q not found in provider listing", e.Number)
}

// ValidationError reports a manifest/attachment correlation failure,
// detected before any network call.
type ValidationError struct {
	AttachmentID string
	Message      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest validation failed on %q: %s", e.AttachmentID, e.Message)
}
