package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of a failure
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNetwork         Kind = "network"
	KindRateLimit       Kind = "rate_limit"
	KindAuthentication  Kind = "authentication"
	KindProfileNotFound Kind = "profile_not_found"
	KindAPI             Kind = "api"
	KindShape           Kind = "shape"
)

// Error is the tagged error value surfaced to callers.
// Status and Response are only set for kinds derived from an HTTP response.
type Error struct {
	Kind     Kind
	Message  string
	Status   int
	Response *ResponseError
	// Err is the underlying cause for network failures
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying HTTP failure or cause, if any
func (e *Error) Unwrap() error {
	if e.Response != nil {
		return e.Response
	}
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
// This lets callers match with errors.Is(err, &errors.Error{Kind: errors.KindRateLimit}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind
func New(kind Kind, message string, status int, resp *ResponseError) *Error {
	return &Error{
		Kind:     kind,
		Message:  message,
		Status:   status,
		Response: resp,
	}
}

// NewValidation creates an input validation error
func NewValidation(message string) *Error {
	return New(KindValidation, message, 0, nil)
}

// NewShape creates an error for a 2xx response missing its expected payload
func NewShape(message string) *Error {
	return New(KindShape, message, 0, nil)
}

// NewNetwork wraps a failure that produced no HTTP response
func NewNetwork(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("network error: %v", err),
		Err:     err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind checks whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ResponseError is returned by the HTTP layer for any non-2xx response
type ResponseError struct {
	Status int
	Header http.Header
	// Body is the raw response payload, possibly empty
	Body []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// AsResponseError extracts the HTTP failure carried by err, if any
func AsResponseError(err error) (*ResponseError, bool) {
	var resp *ResponseError
	if stderrors.As(err, &resp) {
		return resp, true
	}
	return nil, false
}
