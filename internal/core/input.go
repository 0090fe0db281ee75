package core

import "unicode"

// Action represents a semantic input, abstracted from physical key presses.
// Every front end (raw ANSI, tcell, Bubble Tea) maps its keys onto these.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionPause          // P - toggle pause
	ActionMute           // M - toggle sound
	ActionRestart        // R - new round after game over
	ActionMenu           // Space, Esc - back to the menu
	ActionQuit           // Q, Ctrl+C
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
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the heading requested by a movement action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}

// ActionForRune maps a printable key to an action. Letters match
// regardless of case.
func ActionForRune(r rune) Action {
	switch unicode.ToLower(r) {
	case 'w':
		return ActionUp
	case 's':
		return ActionDown
	case 'a':
		return ActionLeft
	case 'd':
		return ActionRight
	case 'p':
		return ActionPause
	case 'm':
		return ActionMute
	case 'r':
		return ActionRestart
	case 'q':
		return ActionQuit
	case ' ':
		return ActionMenu
	}
	return ActionNone
}
