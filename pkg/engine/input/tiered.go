package input

import (
	"sort"
	"time"

	"overworld/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveEast
	ActionMoveWest
	ActionMoveNorthEast
	ActionMoveNorthWest
	ActionMoveSouthEast
	ActionMoveSouthWest

	ActionRest
	ActionTeleport // random jump within the current map
	ActionFly      // jump to a chosen map of the world
	ActionTrainers // list trainers; takes no time
	ActionDump     // write the debug map dump; takes no time
	ActionQuit
)

// Intent is the top-layer description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the first-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "k", "arrow_up", "page_down").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the second-layer representation after deduplication.
// Terminal raw mode already yields one event per key press, so this is a
// thin copy of RawInput.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions. Multiple codes may point to the same
// Action: vi keys, the numeric keypad and the cursor block all move.
var bindings = map[string]Action{
	"k":        ActionMoveNorth,
	"8":        ActionMoveNorth,
	"arrow_up": ActionMoveNorth,

	"j":          ActionMoveSouth,
	"2":          ActionMoveSouth,
	"arrow_down": ActionMoveSouth,

	"l":           ActionMoveEast,
	"6":           ActionMoveEast,
	"arrow_right": ActionMoveEast,

	"h":          ActionMoveWest,
	"4":          ActionMoveWest,
	"arrow_left": ActionMoveWest,

	"u":       ActionMoveNorthEast,
	"9":       ActionMoveNorthEast,
	"page_up": ActionMoveNorthEast,

	"y":    ActionMoveNorthWest,
	"7":    ActionMoveNorthWest,
	"home": ActionMoveNorthWest,

	"n":         ActionMoveSouthEast,
	"3":         ActionMoveSouthEast,
	"page_down": ActionMoveSouthEast,

	"b":   ActionMoveSouthWest,
	"1":   ActionMoveSouthWest,
	"end": ActionMoveSouthWest,

	".":      ActionRest,
	" ":      ActionRest,
	"5":      ActionRest,
	"center": ActionRest,

	"p": ActionTeleport,
	"f": ActionFly,
	"t": ActionTrainers,
	"m": ActionDump,
	"Q": ActionQuit,
}

var moveDirections = map[Action]world.Direction{
	ActionMoveNorth:     world.North,
	ActionMoveSouth:     world.South,
	ActionMoveEast:      world.East,
	ActionMoveWest:      world.West,
	ActionMoveNorthEast: world.NorthEast,
	ActionMoveNorthWest: world.NorthWest,
	ActionMoveSouthEast: world.SouthEast,
	ActionMoveSouthWest: world.SouthWest,
}

// MapToIntent applies the bindings to a debounced input and returns a
// high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Direction returns the direction of a movement action
func (a Action) Direction() (world.Direction, bool) {
	d, ok := moveDirections[a]
	return d, ok
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveEast:
		return "Move East"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveNorthEast:
		return "Move North-East"
	case ActionMoveNorthWest:
		return "Move North-West"
	case ActionMoveSouthEast:
		return "Move South-East"
	case ActionMoveSouthWest:
		return "Move South-West"
	case ActionRest:
		return "Rest"
	case ActionTeleport:
		return "Teleport"
	case ActionFly:
		return "Fly"
	case ActionTrainers:
		return "List Trainers"
	case ActionDump:
		return "Dump Map"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
