package workflow

import "context"

// StateMachine tracks the current state and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, transitioning to the new state if allowed
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers that can be fired in the current state
	PermittedTriggers() []Trigger
}

// NewEditorMachine returns the detail view machine:
//
//	VIEWING --EDIT--> EDITING --SAVE|CANCEL--> VIEWING
func NewEditorMachine(initial State, onTransition TransitionFunc) StateMachine {
	builder := NewBuilder()
	builder.Configure(StateViewing).
		Permit(TriggerEdit, StateEditing)
	builder.Configure(StateEditing).
		Permit(TriggerSave, StateViewing).
		Permit(TriggerCancel, StateViewing)
	if onTransition != nil {
		builder.OnTransition(onTransition)
	}
	return builder.Build(initial)
}
