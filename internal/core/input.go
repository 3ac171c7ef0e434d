package core

// Action represents a semantic play action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Move the cursor up
	ActionDown           // Move the cursor down
	ActionLeft           // Move the cursor left
	ActionRight          // Move the cursor right
	ActionSelect         // Pick up the tile under the cursor, or swap with the picked tile
	ActionCancel         // Drop the picked tile
	ActionHint           // Show a legal move
	ActionRestart        // Start the level again
	ActionBack           // Return to the level menu
	ActionQuit           // Exit the session
	ActionHelp           // Toggle the full key help
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
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Delta returns the cursor offset of a movement action.
// ok is false for actions that do not move the cursor.
func (a Action) Delta() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}
