package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an error so handlers can pick the HTTP status and
// callers can decide whether to fix input, refresh and retry, or abandon.
type Kind int

const (
	KindValidation Kind = iota // malformed or missing input, caller's fault
	KindConflict               // overlapping slot at publish time
	KindSpaceUnavailable       // space state changed underneath the operation
	KindInvalidState           // illegal booking transition
	KindInvalidDuration        // non-positive settlement window
	KindNoPaymentMethod        // no usable payment method at settlement
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to the status the API reports.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvalidDuration, KindNoPaymentMethod:
		return http.StatusUnprocessableEntity
	case KindConflict, KindSpaceUnavailable, KindInvalidState:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func SpaceUnavailable(message string) *Error {
	return &Error{Kind: KindSpaceUnavailable, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func InvalidDuration(message string) *Error {
	return &Error{Kind: KindInvalidDuration, Message: message}
}

func NoPaymentMethod(message string) *Error {
	return &Error{Kind: KindNoPaymentMethod, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
