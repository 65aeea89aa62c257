// Package errors holds the error kinds shared by the route generator and its transports.
package errors

import (
	"errors"
)

var (
	// ErrInvalidArgument marks bad input. It is the caller's fault and is never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstream marks a failed, timed out or unparseable call to an external service.
	ErrUpstream = errors.New("upstream service error")

	// ErrNoReachablePoints is returned when the isochrone produced no usable boundary points.
	ErrNoReachablePoints = errors.New("no reachable points")
)

// Error is an error of a known kind with a human readable detail.
// errors.Is matches both the kind and the wrapped cause.
type Error struct {
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Invalid returns a validation error with the given detail.
func Invalid(detail string) error {
	return &Error{Kind: ErrInvalidArgument, Detail: detail}
}

// Upstream returns an upstream error wrapping cause, which may be nil.
func Upstream(detail string, cause error) error {
	return &Error{Kind: ErrUpstream, Detail: detail, Err: cause}
}

// NoReachable returns a NoReachablePoints error.
func NoReachable(detail string) error {
	return &Error{Kind: ErrNoReachablePoints, Detail: detail}
}

// Detail returns the detail of err if it is an *Error, and err.Error() otherwise.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
