package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not legal from the current state
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state is not valid
	ErrInvalidState = errors.New("invalid state")

	// ErrRoleNotAllowed is returned when the transition exists but the actor's role may not fire it
	ErrRoleNotAllowed = errors.New("role not allowed for transition")
)
