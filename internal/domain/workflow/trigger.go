package workflow

// Trigger represents a user action that can cause a state transition
type Trigger string

const (
	TriggerSubmit       Trigger = "submit"
	TriggerResubmit     Trigger = "resubmit"
	TriggerApprove      Trigger = "approve"
	TriggerSuspend      Trigger = "suspend"
	TriggerReject       Trigger = "reject"
	TriggerFinalApprove Trigger = "final_approve"
	TriggerCancel       Trigger = "cancel"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

// Role identifies the capacity in which an actor fires a trigger.
// RoleOwner is relative to the invoice: the actor owns it.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
