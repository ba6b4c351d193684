package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.  Handlers map kinds to HTTP statuses.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindPersistence   Kind = "persistence"
	KindNotFound      Kind = "not_found"
)

// Operation names used in errors, logs and metrics.
const (
	OpInsert   = "seatingAreas.insert"
	OpUpdate   = "seatingAreas.update"
	OpGet      = "seatingAreas.get"
	OpList     = "seatingAreas.list"
	OpBookings = "seatingAreas.bookings"
)

// Error is the typed error returned by SeatingAreaService.  Message is
// meant for the caller; Details carries the identifiers involved so a
// failed write can be traced.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or "" when
// err is nil or not a service error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func validationError(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

// NewValidationError builds a validation error of op raised outside the
// service, e.g. while building an input from form text.
func NewValidationError(op, msg string) *Error {
	return validationError(op, msg)
}

func persistenceError(op string, err error, details string) *Error {
	return &Error{Kind: KindPersistence, Op: op, Message: err.Error(), Details: details, Err: err}
}

func notFoundError(op string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: err.Error(), Err: err}
}

// NewAuthorizationError builds the error raised when the actor lacks the
// restaurant capability required by op.
func NewAuthorizationError(op, msg string) *Error {
	return &Error{Kind: KindAuthorization, Op: op, Message: msg}
}
