package remp

import (
	"errors"
	"fmt"
)

// ErrorKind names the class of a failed call.
type ErrorKind string

// Error kinds.
const (
	// KindHTTPFailure means the server answered with a status code that was
	// neither 200 nor explicitly accepted for the call.
	KindHTTPFailure ErrorKind = "http-failure"

	// KindRempFailure means the transport failed: the connection could not be
	// established or the response stream broke while the body was read.
	KindRempFailure ErrorKind = "remp-failure"

	// KindDecodeFailure means the body of an accepted response was not valid JSON.
	KindDecodeFailure ErrorKind = "decode-failure"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrHTTPFailure   = errors.New(string(KindHTTPFailure))
	ErrRempFailure   = errors.New(string(KindRempFailure))
	ErrDecodeFailure = errors.New(string(KindDecodeFailure))
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrServerRequired      = errors.New("server is required")
	ErrTokenRequired       = errors.New("token is required")
	ErrNoRotatedToken      = errors.New("no rotated token available")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrUnsupportedParams   = errors.New("unsupported params type")
)

// Error is the typed failure returned by the request engine.
type Error struct {
	Kind   ErrorKind
	Method string
	URL    string
	// Response is the raw transport response. It is set for http-failure
	// and decode-failure errors.
	Response *Response
	// Err is the underlying transport or decoding error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPFailure:
		return fmt.Sprintf("%s: %s %s returned status %d", e.Kind, e.Method, e.URL, e.StatusCode())
	default:
		if e.Err == nil {
			return fmt.Sprintf("%s: %s %s", e.Kind, e.Method, e.URL)
		}

		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Method, e.URL, e.Err)
	}
}

// Unwrap exposes the kind sentinel and the underlying error.
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// Data returns the payload of the failure: the raw *Response for an
// http-failure, the underlying error otherwise.
func (e *Error) Data() interface{} {
	if e.Kind == KindHTTPFailure {
		return e.Response
	}

	return e.Err
}

// StatusCode returns the transport status code, or 0 when no response was received.
func (e *Error) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindHTTPFailure:
		return ErrHTTPFailure
	case KindDecodeFailure:
		return ErrDecodeFailure
	default:
		return ErrRempFailure
	}
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	rempErr := &Error{}
	if errors.As(err, &rempErr) {
		return rempErr.Kind, true
	}

	return "", false
}

// StatusCode returns the transport status code carried by err, if any.
func StatusCode(err error) (int, bool) {
	rempErr := &Error{}
	if errors.As(err, &rempErr) && rempErr.Response != nil {
		return rempErr.Response.StatusCode, true
	}

	return 0, false
}

// IsHTTPFailure checks if the error is an http-failure.
func IsHTTPFailure(err error) bool {
	return errors.Is(err, ErrHTTPFailure)
}

// IsRempFailure checks if the error is a remp-failure.
func IsRempFailure(err error) bool {
	return errors.Is(err, ErrRempFailure)
}

// IsDecodeFailure checks if the error is a decode-failure.
func IsDecodeFailure(err error) bool {
	return errors.Is(err, ErrDecodeFailure)
}
