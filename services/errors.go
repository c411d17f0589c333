package services

import (
	"errors"
	"fmt"

	"github.com/levomgrup/sales-api/repository"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Error is returned by every service operation that fails. Message is safe to
// show to the API caller; Errors carries per-field messages for validation
// failures; Err is the underlying cause and is never exposed.
type Error struct {
	Kind    ErrorKind
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func invalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func validationFailed(fieldErrors []string) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidationFailed, Errors: fieldErrors}
}

func internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// lookupError maps a repository lookup failure to NotFound or Internal.
func lookupError(err error, notFoundMessage string) *Error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(notFoundMessage)
	}
	return internal(MsgServerError, err)
}

// KindOf returns the kind of a service error, or KindInternal for any other error.
func KindOf(err error) ErrorKind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindInternal
}
