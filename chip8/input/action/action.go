package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// Keypad buttons 0x0-0xF, in button index order
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorSnapshot
	EmulatorQuit
)

// KeypadButtons is the number of logical buttons on the keypad
const KeypadButtons = 16

// Category groups actions by who consumes them
type Category int

const (
	// CategoryGameInput actions are forwarded to the machine
	CategoryGameInput Category = iota
	// CategoryEmulator actions are handled by the host
	CategoryEmulator
)

// Info describes an action for logging and help screens
type Info struct {
	Description string
	Category    Category
}

// GetInfo returns the description and category of an action
func GetInfo(act Action) Info {
	if button, ok := act.Button(); ok {
		return Info{
			Description: fmt.Sprintf("Keypad %X", button),
			Category:    CategoryGameInput,
		}
	}

	switch act {
	case EmulatorSnapshot:
		return Info{Description: "Save display snapshot", Category: CategoryEmulator}
	case EmulatorQuit:
		return Info{Description: "Quit", Category: CategoryEmulator}
	default:
		return Info{Description: "Unknown", Category: CategoryEmulator}
	}
}

// Button returns the logical button index of a keypad action.
func (a Action) Button() (uint8, bool) {
	if a >= Keypad0 && a <= KeypadF {
		return uint8(a - Keypad0), true
	}
	return 0, false
}

// ForButton returns the keypad action for a logical button index.
func ForButton(button uint8) (Action, bool) {
	if button >= KeypadButtons {
		return 0, false
	}
	return Keypad0 + Action(button), true
}
