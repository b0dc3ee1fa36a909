package workflow

// commentRequired lists the triggers that must carry a reviewer comment
var commentRequired = map[Trigger]bool{
	TriggerSuspend: true,
	TriggerReject:  true,
}

// RequiresComment returns true if the trigger must be accompanied by a non-empty comment
func RequiresComment(trigger Trigger) bool {
	return commentRequired[trigger]
}

// NewInvoiceMachine creates a state machine configured for the customs invoice
// approval lifecycle. The transition table is the single source of truth for
// which role may move an invoice between states.
func NewInvoiceMachine(initialState State) StateMachine {
	builder := NewBuilder()

	// draft state transitions
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner).
		Permit(TriggerCancel, StateCancelled, RoleOwner, RoleAdmin)

	// pending_supervisor state transitions
	builder.Configure(StatePendingSupervisor).
		Permit(TriggerApprove, StatePendingAdmin, RoleSupervisor).
		Permit(TriggerSuspend, StateSuspended, RoleSupervisor, RoleAdmin).
		Permit(TriggerReject, StateCancelled, RoleSupervisor, RoleAdmin)

	// pending_admin state transitions
	builder.Configure(StatePendingAdmin).
		Permit(TriggerFinalApprove, StateApproved, RoleAdmin).
		Permit(TriggerSuspend, StateSuspended, RoleSupervisor, RoleAdmin).
		Permit(TriggerReject, StateCancelled, RoleSupervisor, RoleAdmin)

	// suspended state transitions
	builder.Configure(StateSuspended).
		Permit(TriggerResubmit, StatePendingSupervisor, RoleOwner, RoleAdmin).
		Permit(TriggerCancel, StateCancelled, RoleOwner, RoleAdmin)

	// approved and cancelled are terminal states - no outgoing transitions

	return builder.Build(initialState)
}
