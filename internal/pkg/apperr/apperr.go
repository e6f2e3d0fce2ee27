package apperr

import "errors"

// Kind classifies failures so handlers can pick status codes without
// string-matching service errors.
type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindNotFound
	KindUpstream
	KindPersistence
)

// Error carries a kind plus a client-facing message. Wrapped causes stay
// available for logging via Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Cause: cause}
}

func Persistence(msg string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Cause: cause}
}

// KindOf returns the kind of err, or KindPersistence for unclassified errors
// (anything a service did not wrap is a storage/internal failure).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// Is lets callers test a kind with errors-style checks.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
