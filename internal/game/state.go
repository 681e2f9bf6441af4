// Package game drives engine battles: an interactive terminal session and
// an autopilot that plays both sides.
package game

// State is what the session is waiting for from the player.
type State int

const (
	// StateCommand waits for a move, a switch request or a flee.
	StateCommand State = iota
	// StateSwitch waits for the party member to switch in voluntarily.
	StateSwitch
	// StateForcedSwitch waits for a replacement after a faint or a
	// self-switching move.
	StateForcedSwitch
	// StateOver shows the result until a key is pressed.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCommand:
		return "command"
	case StateSwitch:
		return "switch"
	case StateForcedSwitch:
		return "forced_switch"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}
