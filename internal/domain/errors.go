package domain

import "errors"

type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindConflict   ErrorKind = "conflict"
	ErrorKindForbidden  ErrorKind = "forbidden"
)

// Error — ошибка бизнес-логики с устойчивым видом, по которому
// транспортный слой выбирает HTTP-статус.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &Error{Kind: ErrorKindConflict, Message: message}
}

func NewForbiddenError(message string) error {
	return &Error{Kind: ErrorKindForbidden, Message: message}
}

func KindOf(err error) (ErrorKind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
