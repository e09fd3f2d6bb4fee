package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move card cursor up
	ActionDown           // move card cursor down
	ActionLeft           // move card cursor left
	ActionRight          // move card cursor right
	ActionSubmit         // submit typed answer (sequence modes)
	ActionFlip           // flip the card under the cursor (card modes)
	ActionPowerUp        // use the power-up named in InputFrame.PowerUp
	ActionBack           // return to menu
	ActionRestart        // restart after game over
	ActionQuit           // exit
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
	case ActionSubmit:
		return "Submit"
	case ActionFlip:
		return "Flip"
	case ActionPowerUp:
		return "PowerUp"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects everything the player did during one simulation tick.
// Actions without a payload live in the map; Text and PowerUp carry the payload
// for ActionSubmit and ActionPowerUp.
type InputFrame struct {
	Actions map[Action]bool
	Text    string // answer text for ActionSubmit
	PowerUp string // power-up kind for ActionPowerUp
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Submit records an answer submission.
func (f *InputFrame) Submit(text string) {
	f.Set(ActionSubmit)
	f.Text = text
}

// UsePowerUp records a power-up request.
func (f *InputFrame) UsePowerUp(kind string) {
	f.Set(ActionPowerUp)
	f.PowerUp = kind
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and payloads for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Text = ""
	f.PowerUp = ""
}
