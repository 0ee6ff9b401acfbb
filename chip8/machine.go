package chip8

import "github.com/valerio/go-chip8/chip8/video"

// Machine is the virtual machine driven by the host loop. The host never
// looks inside it: it feeds key state, asks for instruction steps and timer
// steps, and reads the display.
type Machine interface {
	// Load copies a program image into memory.
	Load(rom []byte) error
	// Tick executes one instruction step.
	Tick()
	// TickTimers advances the delay and sound timers once. beep is called
	// when the sound timer expires.
	TickTimers(beep func())
	Keypress(button uint8, pressed bool)
	Display() *video.Display
}
