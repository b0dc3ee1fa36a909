package workflow

// StateMachine tracks the current state of an invoice and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state for the role
	CanFire(trigger Trigger, role Role) bool

	// Fire attempts to execute the trigger, transitioning to the new state if allowed.
	// Returns ErrInvalidTransition when the trigger is not legal from the current
	// state, and ErrRoleNotAllowed when it is legal but not for the given role.
	Fire(trigger Trigger, role Role) error

	// PermittedTriggers returns all triggers the role can fire in the current state
	PermittedTriggers(role Role) []Trigger
}
