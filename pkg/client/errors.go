package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind string

const (
	// KindTransport covers network failures, timeouts, and responses
	// that could not be decoded.
	KindTransport Kind = "transport"

	// KindServer covers well-formed responses reporting success=false.
	KindServer Kind = "server"
)

// TransportMessage is the user-facing message for every transport failure.
const TransportMessage = "Unable to reach the server"

// Error is the failure half of a request result.
type Error struct {
	Kind    Kind
	Message string

	// Status is the HTTP status code, or 0 when no response arrived.
	Status int

	// Err is the underlying cause for transport failures.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-provided message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var ce *Error
	if errors.As(err, &ce) && ce.Kind == KindServer && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func transportError(status int, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: TransportMessage,
		Status:  status,
		Err:     err,
	}
}
