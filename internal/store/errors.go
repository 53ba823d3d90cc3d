package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPartnerCode means the connection code matched no user
	// document.
	ErrInvalidPartnerCode = errors.New("invalid partner code")

	// ErrNotAuthenticated means an action requiring a signed-in user
	// was called while anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ValidationError reports caller-supplied input that failed a check
// before any collaborator was contacted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteError wraps a failure from the identity or document
// collaborator, naming the operation that failed.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
