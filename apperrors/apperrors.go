// Package apperrors carries the error taxonomy shared by the meeting and
// progress engines. Callers match on Kind to pick an HTTP status; the engines
// never return a kind the caller cannot distinguish programmatically.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation: malformed or out-of-domain input (unknown lecture id,
	// unrecognized time slot, rating outside 1-5).
	Validation Kind = iota + 1
	// Precondition: input is valid but a required accompanying fact is
	// missing (no meeting link on accept, rating already set).
	Precondition
	// State: the operation is not legal from the record's current state.
	State
	// NotFound: the referenced record does not exist.
	NotFound
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return newError(Validation, format, args...)
}

func Preconditionf(format string, args ...interface{}) *Error {
	return newError(Precondition, format, args...)
}

func Statef(format string, args ...interface{}) *Error {
	return newError(State, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newError(NotFound, format, args...)
}

// KindOf returns the kind of err, or 0 if err is not an engine error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
