package core

// Action is a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // move cursor up
	ActionDown              // move cursor down
	ActionLeft              // move cursor left
	ActionRight             // move cursor right
	ActionPrimary           // reveal, or flag in flagging mode
	ActionFlag              // toggle flag on the cursor cell
	ActionUnflag            // remove one flag (MultiMine)
	ActionChord             // chord the number under the cursor
	ActionSwitchMode        // swap between revealing and flagging input
	ActionRestart           // new game on the same board
	ActionBack              // leave the board
	ActionQuit              // exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPrimary:
		return "Primary"
	case ActionFlag:
		return "Flag"
	case ActionUnflag:
		return "Unflag"
	case ActionChord:
		return "Chord"
	case ActionSwitchMode:
		return "SwitchMode"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two steps. Actions are
// kept in arrival order because cursor moves and reveals do not commute.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	return InputFrame{Actions: append([]Action(nil), actions...)}
}

// Set appends an action to the frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next step.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
