package model

// State is the lifecycle state of a sample.
type State string

const (
	StateInUse      State = "in_use"
	StateBroken     State = "broken"
	StateAvailable  State = "available"
	StateArchived   State = "archived"
	StateUnassigned State = "unassigned"
	StateUnknown    State = "unknown"
)

// States lists every state, including the StateUnknown fallback.
var States = []State{StateInUse, StateBroken, StateAvailable, StateArchived, StateUnassigned, StateUnknown}

// ParseState maps the server's state text to a State. Unrecognised text is StateUnknown.
func ParseState(s string) State {
	for _, state := range States {
		if string(state) == s {
			return state
		}
	}
	return StateUnknown
}

// Label is the human readable name of the state.
func (s State) Label() string {
	switch s {
	case StateInUse:
		return "In Use"
	case StateBroken:
		return "Broken"
	case StateAvailable:
		return "Available"
	case StateArchived:
		return "Archived"
	case StateUnassigned:
		return "Unassigned"
	default:
		return "Unknown"
	}
}
