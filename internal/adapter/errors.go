package adapter

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every [*Error] unwraps to exactly one of them.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("client unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrServer            = errors.New("server error")
	ErrRequestFailed     = errors.New("request failed")
	ErrTransport         = errors.New("transport failure")
	ErrMalformedResponse = errors.New("malformed response")
)

var errInvalidJSON = errors.New("invalid JSON body")

// Error is the single failure shape produced by [Gateway].
//
// Error() returns Message only, so the value can be shown to the user
// directly. errors.Is matches the sentinel kind and, for transport
// failures, the underlying cause (e.g. context.DeadlineExceeded).
type Error struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Message is the human-readable description.
	Message string

	kind  error
	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// Kind returns the sentinel the error belongs to.
func (e *Error) Kind() error {
	return e.kind
}

func newTransportError(cause error) *Error {
	return &Error{
		Message: fmt.Sprintf("cannot reach server: %v", cause),
		kind:    ErrTransport,
		cause:   cause,
	}
}

func newMalformedError(status int, cause error) *Error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf("malformed server response: %v", cause),
		kind:    ErrMalformedResponse,
		cause:   cause,
	}
}

// IsAuthError reports whether err means the backend rejected the bearer
// credential (401).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
