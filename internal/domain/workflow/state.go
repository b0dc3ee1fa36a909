package workflow

// State represents an invoice state in the approval lifecycle
type State string

const (
	StateDraft             State = "draft"
	StatePendingSupervisor State = "pending_supervisor"
	StatePendingAdmin      State = "pending_admin"
	StateApproved          State = "approved"
	StateSuspended         State = "suspended"
	StateCancelled         State = "cancelled"
)

var validStates = map[State]bool{
	StateDraft:             true,
	StatePendingSupervisor: true,
	StatePendingAdmin:      true,
	StateApproved:          true,
	StateSuspended:         true,
	StateCancelled:         true,
}

var terminalStates = map[State]bool{
	StateApproved:  true,
	StateCancelled: true,
}

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid invoice state
func (s State) IsValid() bool {
	return validStates[s]
}
