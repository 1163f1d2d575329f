package workflow

import (
	"context"
	"fmt"
	"sort"
)

// TransitionFunc is notified after every successful transition
type TransitionFunc func(ctx context.Context, from, to State, trigger Trigger)

// StateMachineBuilder builds a configured state machine
type StateMachineBuilder interface {
	// Configure returns a state configuration for the given state
	Configure(state State) StateConfiguration

	// OnTransition registers a listener for completed transitions
	OnTransition(fn TransitionFunc) StateMachineBuilder

	// Build creates a new state machine instance with the given initial state
	Build(initialState State) StateMachine
}

// StateConfiguration configures transitions for a specific state
type StateConfiguration interface {
	// Permit allows a trigger to transition to the target state
	Permit(trigger Trigger, toState State) StateConfiguration
}

type stateConfig struct {
	transitions map[Trigger]State
}

type stateMachineBuilder struct {
	configurations map[State]*stateConfig
	listeners      []TransitionFunc
}

type stateMachine struct {
	currentState   State
	configurations map[State]map[Trigger]State
	listeners      []TransitionFunc
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
		config = &stateConfig{transitions: make(map[Trigger]State)}
		b.configurations[state] = config
	}
	return config
}

// OnTransition registers a listener for completed transitions
func (b *stateMachineBuilder) OnTransition(fn TransitionFunc) StateMachineBuilder {
	b.listeners = append(b.listeners, fn)
	return b
}

// Build creates a new state machine instance with the given initial state.
// Machines built from the same builder do not share configuration.
func (b *stateMachineBuilder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	configs := make(map[State]map[Trigger]State, len(b.configurations))
	for state, config := range b.configurations {
		transitions := make(map[Trigger]State, len(config.transitions))
		for trigger, to := range config.transitions {
			transitions[trigger] = to
		}
		configs[state] = transitions
	}

	return &stateMachine{
		currentState:   initialState,
		configurations: configs,
		listeners:      append([]TransitionFunc(nil), b.listeners...),
	}
}

// Permit allows a trigger to transition to the target state
func (c *stateConfig) Permit(trigger Trigger, toState State) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	c.transitions[trigger] = toState
	return c
}

// State returns the current state
func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire returns true if the trigger is permitted in the current state
func (m *stateMachine) CanFire(trigger Trigger) bool {
	_, ok := m.configurations[m.currentState][trigger]
	return ok
}

// Fire attempts to execute the trigger, transitioning to the new state if allowed
func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	to, ok := m.configurations[m.currentState][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	from := m.currentState
	m.currentState = to
	for _, fn := range m.listeners {
		fn(ctx, from, to, trigger)
	}
	return nil
}

// PermittedTriggers returns all triggers that can be fired in the current state, sorted
func (m *stateMachine) PermittedTriggers() []Trigger {
	transitions := m.configurations[m.currentState]
	triggers := make([]Trigger, 0, len(transitions))
	for trigger := range transitions {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
