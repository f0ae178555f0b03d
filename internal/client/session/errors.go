package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned by a mutation called from a state
	// that does not allow it (e.g. CompleteSetup after setup).
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrInvalidStatus is returned when the backend reports a user while
	// claiming the setup is not complete.
	ErrInvalidStatus = errors.New("inconsistent status: user without setup")
)

// ScopeError reports a read of gated data where no resolved gate is in
// scope. It is a programming error and is never shown to end users.
type ScopeError struct {
	Field string
	State State
}

func (e *ScopeError) Error() string {
	if e.Field == "" {
		return "session: no gate in scope"
	}
	return fmt.Sprintf("session: %s read outside an active gate scope (state %s)", e.Field, e.State)
}
