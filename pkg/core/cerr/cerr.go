// Package cerr contains the core errors which are recognized by the
// adapter layers. Each *Error carries a Kind (one of the sentinel
// errors of this package) and the HTTP status code which a REST
// adapter should report for it.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Use errors.Is in order to check for them.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidRange     = errors.New("invalid range")
	ErrForbidden        = errors.New("forbidden")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type Error struct {
	Kind           error
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func InvalidInput(err error) *Error {
	return &Error{
		Kind: ErrInvalidInput, Err: err,
		HTTPStatusCode: http.StatusBadRequest,
	}
}

func InvalidRange(err error) *Error {
	return &Error{
		Kind: ErrInvalidRange, Err: err,
		HTTPStatusCode: http.StatusBadRequest,
	}
}

func Forbidden(err error) *Error {
	return &Error{
		Kind: ErrForbidden, Err: err,
		HTTPStatusCode: http.StatusForbidden,
	}
}

// NotAuthorized is reported when the caller is authenticated, but its
// role is not privileged enough for the requested operation.
func NotAuthorized(err error) *Error {
	return &Error{
		Kind: ErrNotAuthorized, Err: err,
		HTTPStatusCode: http.StatusForbidden,
	}
}

// StoreUnavailable is reported when the persistence boundary fails.
// No retry is attempted by the use cases, the caller may retry.
func StoreUnavailable(err error) *Error {
	return &Error{
		Kind: ErrStoreUnavailable, Err: err,
		HTTPStatusCode: http.StatusServiceUnavailable,
	}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}
