package gateway

import "errors"

// ErrKind classifies gateway failures for the controller: transport
// problems are retryable, remote errors carry a backend message.
type ErrKind int

const (
	KindConnection ErrKind = iota + 1
	KindRemote
)

// Error is the gateway's error taxonomy. "Month not found" never
// becomes an Error; it is normalized to an empty month upstream.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func connectionFailed(msg string) *Error {
	return &Error{Kind: KindConnection, Message: msg}
}

func remoteError(msg string) *Error {
	return &Error{Kind: KindRemote, Message: msg}
}

// IsConnectionFailed reports whether err is a transport-level failure.
func IsConnectionFailed(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindConnection
}

// IsRemote reports whether err is an application-level backend error.
func IsRemote(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindRemote
}
