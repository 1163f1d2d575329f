package workflow

// State is a display mode of the leave detail view
type State string

const (
	StateViewing State = "VIEWING"
	StateEditing State = "EDITING"
)

var validStates = map[State]bool{
	StateViewing: true,
	StateEditing: true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known display mode
func (s State) IsValid() bool {
	return validStates[s]
}

// ParseMode maps a "mode" query value to a state. Anything other than
// "edit" is viewing.
func ParseMode(mode string) State {
	if mode == "edit" {
		return StateEditing
	}
	return StateViewing
}
