package input

import "github.com/valerio/go-chip8/chip8/input/action"

// The original computers running CHIP-8 programs used a 16-key hexadecimal
// keypad. It is mapped onto the left-hand block of a QWERTY keyboard:
//
//	Keypad        Keyboard
//	1 2 3 C       1 2 3 4
//	4 5 6 D       q w e r
//	7 8 9 E       a s d f
//	A 0 B F       z x c v
var keypad = map[string]uint8{
	"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
	"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
	"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
	"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
}

// hostKeys are keys consumed by the host rather than the machine
var hostKeys = map[string]action.Action{
	"Escape": action.EmulatorQuit,
	"F12":    action.EmulatorSnapshot,
}

// Button resolves a key name to a logical button index. Every key without a
// keypad mapping resolves to false.
func Button(key string) (uint8, bool) {
	button, ok := keypad[key]
	return button, ok
}

// Lookup resolves a key name to the action it triggers, if any.
func Lookup(key string) (action.Action, bool) {
	if button, ok := Button(key); ok {
		return action.ForButton(button)
	}
	act, ok := hostKeys[key]
	return act, ok
}
