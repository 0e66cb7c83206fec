// Package apperrors defines the closed set of failures an API call can end in.
// Every failed call produces exactly one *RequestError whose Kind names the
// class of failure. Values match their class sentinel with errors.Is and
// unwrap to the underlying cause.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the class of a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindDecoding
	KindServer
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecoding:
		return "decoding"
	case KindServer:
		return "server"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is the interface satisfied by classified failures.
type Error interface {
	error
	Kind() Kind
	StatusCode() int // 0 when no response was received
	Cause() error
}

// Class sentinels. Use with errors.Is.
var (
	ErrNetwork      = &RequestError{kind: KindNetwork, msg: "network error"}
	ErrDecoding     = &RequestError{kind: KindDecoding, msg: "failed to decode data from the server"}
	ErrServer       = &RequestError{kind: KindServer, msg: "server error"}
	ErrUnauthorized = &RequestError{kind: KindUnauthorized, msg: "session expired"}
	ErrUnknown      = &RequestError{kind: KindUnknown, msg: "an unexpected error occurred"}
)

var _ Error = (*RequestError)(nil)

// RequestError is a classified failure.
type RequestError struct {
	kind       Kind
	msg        string
	statusCode int
	cause      error
	base       *RequestError
}

// Network classifies a transport failure or a precondition that failed before send.
func Network(cause error) *RequestError {
	return ErrNetwork.wrap(0, cause)
}

// Decoding classifies a body that could not be parsed into the expected shape.
func Decoding(statusCode int, cause error) *RequestError {
	return ErrDecoding.wrap(statusCode, cause)
}

// Server classifies a non-success status other than 401.
func Server(statusCode int, cause error) *RequestError {
	return ErrServer.wrap(statusCode, cause)
}

// Unauthorized classifies a 401 response.
func Unauthorized() *RequestError {
	return ErrUnauthorized.wrap(401, nil)
}

// Unknown classifies anything that matches no other class.
func Unknown(cause error) *RequestError {
	return ErrUnknown.wrap(0, cause)
}

func (e *RequestError) wrap(statusCode int, cause error) *RequestError {
	return &RequestError{
		kind:       e.kind,
		msg:        e.msg,
		statusCode: statusCode,
		cause:      cause,
		base:       e,
	}
}

func (e *RequestError) Error() string {
	switch {
	case e.kind == KindServer && e.statusCode != 0 && e.cause != nil:
		return fmt.Sprintf("%s with status code %d: %v", e.msg, e.statusCode, e.cause)
	case e.kind == KindServer && e.statusCode != 0:
		return fmt.Sprintf("%s with status code %d", e.msg, e.statusCode)
	case e.kind == KindDecoding && e.statusCode != 0 && e.cause != nil:
		return fmt.Sprintf("%s (status %d): %v", e.msg, e.statusCode, e.cause)
	case e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	default:
		return e.msg
	}
}

// Unwrap exposes both the class sentinel and the cause to errors.Is and errors.As.
func (e *RequestError) Unwrap() []error {
	var errs []error
	if e.base != nil {
		errs = append(errs, e.base)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func (e *RequestError) Kind() Kind      { return e.kind }
func (e *RequestError) StatusCode() int { return e.statusCode }
func (e *RequestError) Cause() error    { return e.cause }

// KindOf returns the class of err, or KindUnknown when err is not classified.
func KindOf(err error) Kind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.kind
	}
	return KindUnknown
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.statusCode
	}
	return 0
}

// IsRetryable reports whether a caller may reasonably retry the call.
// Only transport failures qualify; the client itself never retries.
func IsRetryable(err error) bool {
	return KindOf(err) == KindNetwork
}
