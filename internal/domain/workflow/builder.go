package workflow

import "fmt"

// StateMachineBuilder builds a configured state machine
type StateMachineBuilder interface {
	// Configure returns a state configuration for the given state
	Configure(state State) StateConfiguration

	// Build creates a new state machine instance with the given initial state
	Build(initialState State) StateMachine
}

// StateConfiguration configures transitions for a specific state
type StateConfiguration interface {
	// Permit allows the listed roles to fire the trigger, transitioning to the target state.
	// Authorization lives in this table, not in handler code.
	Permit(trigger Trigger, toState State, roles ...Role) StateConfiguration
}

// transition represents a state transition and the roles allowed to fire it
type transition struct {
	toState State
	roles   map[Role]bool
}

// stateConfig implements StateConfiguration
type stateConfig struct {
	fromState   State
	transitions map[Trigger]transition
}

// stateMachineBuilder implements StateMachineBuilder
type stateMachineBuilder struct {
	configurations map[State]*stateConfig
}

// stateMachine implements StateMachine
type stateMachine struct {
	currentState   State
	configurations map[State]*stateConfig
}

// NewBuilder creates a new state machine builder
func NewBuilder() StateMachineBuilder {
	return &stateMachineBuilder{
		configurations: make(map[State]*stateConfig),
	}
}

// Configure returns a state configuration for the given state
func (b *stateMachineBuilder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}

	config, exists := b.configurations[state]
	if !exists {
		config = &stateConfig{
			fromState:   state,
			transitions: make(map[Trigger]transition),
		}
		b.configurations[state] = config
	}

	return config
}

// Build creates a new state machine instance with the given initial state
func (b *stateMachineBuilder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	// Deep copy configurations so built machines are independent of the builder
	configsCopy := make(map[State]*stateConfig)
	for state, config := range b.configurations {
		transitionsCopy := make(map[Trigger]transition, len(config.transitions))
		for trigger, t := range config.transitions {
			rolesCopy := make(map[Role]bool, len(t.roles))
			for role := range t.roles {
				rolesCopy[role] = true
			}
			transitionsCopy[trigger] = transition{toState: t.toState, roles: rolesCopy}
		}
		configsCopy[state] = &stateConfig{
			fromState:   state,
			transitions: transitionsCopy,
		}
	}

	return &stateMachine{
		currentState:   initialState,
		configurations: configsCopy,
	}
}

// Permit allows the listed roles to fire the trigger, transitioning to the target state
func (c *stateConfig) Permit(trigger Trigger, toState State, roles ...Role) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	if len(roles) == 0 {
		panic(fmt.Sprintf("transition %s -> %s permits no roles", c.fromState, toState))
	}

	roleSet := make(map[Role]bool, len(roles))
	for _, role := range roles {
		roleSet[role] = true
	}
	c.transitions[trigger] = transition{toState: toState, roles: roleSet}

	return c
}

// State returns the current state
func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire returns true if the trigger is permitted in the current state for the role
func (m *stateMachine) CanFire(trigger Trigger, role Role) bool {
	config, exists := m.configurations[m.currentState]
	if !exists {
		return false
	}

	t, exists := config.transitions[trigger]
	return exists && t.roles[role]
}

// Fire attempts to execute the trigger, transitioning to the new state if allowed
func (m *stateMachine) Fire(trigger Trigger, role Role) error {
	config, exists := m.configurations[m.currentState]
	if !exists {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	t, exists := config.transitions[trigger]
	if !exists {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	if !t.roles[role] {
		return fmt.Errorf("%w: trigger %s from state %s as %s", ErrRoleNotAllowed, trigger, m.currentState, role)
	}

	m.currentState = t.toState
	return nil
}

// PermittedTriggers returns all triggers the role can fire in the current state
func (m *stateMachine) PermittedTriggers(role Role) []Trigger {
	config, exists := m.configurations[m.currentState]
	if !exists {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(config.transitions))
	for trigger, t := range config.transitions {
		if t.roles[role] {
			triggers = append(triggers, trigger)
		}
	}

	return triggers
}
