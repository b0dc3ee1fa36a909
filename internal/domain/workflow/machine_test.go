package workflow

import (
	"errors"
	"testing"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateDraft, false},
		{StatePendingSupervisor, false},
		{StatePendingAdmin, false},
		{StateSuspended, false},
		{StateApproved, true},
		{StateCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"valid state", StateDraft, true},
		{"valid state", StateCancelled, true},
		{"invalid state", State("in_review"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	if got := StatePendingSupervisor.String(); got != "pending_supervisor" {
		t.Errorf("State.String() = %v, want %v", got, "pending_supervisor")
	}
}

func TestTrigger_String(t *testing.T) {
	if got := TriggerFinalApprove.String(); got != "final_approve" {
		t.Errorf("Trigger.String() = %v, want %v", got, "final_approve")
	}
}

func TestBuilder_Configure(t *testing.T) {
	builder := NewBuilder()

	config := builder.Configure(StateDraft)
	if config == nil {
		t.Fatal("Configure() returned nil")
	}

	// Configure same state again should return same config
	config2 := builder.Configure(StateDraft)
	if config != config2 {
		t.Error("Configure() should return same config for same state")
	}
}

func TestBuilder_ConfigurePanicsOnInvalidState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid state")
		}
	}()

	builder.Configure(State("archived"))
}

func TestBuilder_BuildPanicsOnInvalidInitialState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on invalid initial state")
		}
	}()

	builder.Build(State("archived"))
}

func TestStateConfiguration_Permit(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner)

	machine := builder.Build(StateDraft)

	if !machine.CanFire(TriggerSubmit, RoleOwner) {
		t.Error("CanFire() should return true for permitted trigger and role")
	}
	if machine.CanFire(TriggerSubmit, RoleSupervisor) {
		t.Error("CanFire() should return false for a role the transition does not permit")
	}
	if machine.CanFire(TriggerReject, RoleOwner) {
		t.Error("CanFire() should return false for an unconfigured trigger")
	}
}

func TestStateConfiguration_PermitPanicsWithoutRoles(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Permit() should panic when no roles are given")
		}
	}()

	builder.Configure(StateDraft).Permit(TriggerSubmit, StatePendingSupervisor)
}

func TestStateMachine_Fire(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner)

	machine := builder.Build(StateDraft)

	if err := machine.Fire(TriggerSubmit, RoleOwner); err != nil {
		t.Fatalf("Fire() unexpected error: %v", err)
	}
	if machine.State() != StatePendingSupervisor {
		t.Errorf("State() = %v, want %v", machine.State(), StatePendingSupervisor)
	}
}

func TestStateMachine_FireInvalidTransition(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner)

	machine := builder.Build(StateDraft)

	err := machine.Fire(TriggerReject, RoleAdmin)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want ErrInvalidTransition", err)
	}
	if machine.State() != StateDraft {
		t.Errorf("state changed after failed transition: %v", machine.State())
	}
}

func TestStateMachine_FireRoleNotAllowed(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner)

	machine := builder.Build(StateDraft)

	err := machine.Fire(TriggerSubmit, RoleSupervisor)
	if !errors.Is(err, ErrRoleNotAllowed) {
		t.Errorf("Fire() error = %v, want ErrRoleNotAllowed", err)
	}
	if machine.State() != StateDraft {
		t.Errorf("state changed after denied transition: %v", machine.State())
	}
}

func TestStateMachine_FireFromTerminalState(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner)

	machine := builder.Build(StateApproved)

	err := machine.Fire(TriggerSubmit, RoleOwner)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() from terminal state error = %v, want ErrInvalidTransition", err)
	}
}

func TestStateMachine_PermittedTriggers(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StatePendingSupervisor).
		Permit(TriggerApprove, StatePendingAdmin, RoleSupervisor).
		Permit(TriggerSuspend, StateSuspended, RoleSupervisor, RoleAdmin).
		Permit(TriggerReject, StateCancelled, RoleSupervisor, RoleAdmin)

	machine := builder.Build(StatePendingSupervisor)

	if got := machine.PermittedTriggers(RoleSupervisor); len(got) != 3 {
		t.Errorf("PermittedTriggers(supervisor) = %v, want 3 triggers", got)
	}
	if got := machine.PermittedTriggers(RoleAdmin); len(got) != 2 {
		t.Errorf("PermittedTriggers(admin) = %v, want 2 triggers", got)
	}
	if got := machine.PermittedTriggers(RoleOwner); len(got) != 0 {
		t.Errorf("PermittedTriggers(owner) = %v, want none", got)
	}
}

func TestBuilder_BuildIsolatesMachines(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StatePendingSupervisor, RoleOwner)

	first := builder.Build(StateDraft)
	second := builder.Build(StateDraft)

	if err := first.Fire(TriggerSubmit, RoleOwner); err != nil {
		t.Fatalf("Fire() unexpected error: %v", err)
	}

	if second.State() != StateDraft {
		t.Errorf("second machine state = %v, want draft", second.State())
	}
}
