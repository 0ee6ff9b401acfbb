package chip8

import (
	"errors"
	"fmt"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// MaxProgramSize is the space between the program start (0x200) and the
	// end of the 4 KiB address space
	MaxProgramSize = 4096 - 0x200

	patternScrollDelay = 6 // Timer steps between two scrolled rows
	patternKeySound    = 2 // Sound timer value set by a key press
	patternRowBytes    = display.ScreenWidth / 8
)

// keypadCells places each button on a 4x4 grid laid out like the keypad
var keypadCells = [action.KeypadButtons][2]int{
	0x1: {0, 0}, 0x2: {1, 0}, 0x3: {2, 0}, 0xC: {3, 0},
	0x4: {0, 1}, 0x5: {1, 1}, 0x6: {2, 1}, 0xD: {3, 1},
	0x7: {0, 2}, 0x8: {1, 2}, 0x9: {2, 2}, 0xE: {3, 2},
	0xA: {0, 3}, 0x0: {1, 3}, 0xB: {2, 3}, 0xF: {3, 3},
}

// PatternMachine is a Machine without an instruction set. It shows the
// loaded image as a scrolling bitmap, one bit per pixel, and lights the
// pressed keys in the bottom right corner. A key press also sets the sound
// timer so beeps can be heard.
type PatternMachine struct {
	rom     []byte
	display *video.Display
	keys    [action.KeypadButtons]bool

	offset     int // First image row on screen
	delayTimer uint8
	soundTimer uint8
	ticks      uint64
	dirty      bool
}

func NewPatternMachine() *PatternMachine {
	return &PatternMachine{
		display: video.NewDisplay(display.ScreenWidth, display.ScreenHeight),
	}
}

func (m *PatternMachine) Load(rom []byte) error {
	if len(rom) == 0 {
		return errors.New("program image is empty")
	}
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("program image too large: %d bytes, max %d", len(rom), MaxProgramSize)
	}

	m.rom = make([]byte, len(rom))
	copy(m.rom, rom)
	m.offset = 0
	m.delayTimer = patternScrollDelay
	m.dirty = true
	return nil
}

// Tick redraws the display if anything changed since the last step.
func (m *PatternMachine) Tick() {
	m.ticks++
	if m.dirty {
		m.redraw()
		m.dirty = false
	}
}

// TickTimers scrolls one row each time the delay timer runs out and calls
// beep when the sound timer expires.
func (m *PatternMachine) TickTimers(beep func()) {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.delayTimer == 0 && len(m.rom) > 0 {
		m.offset++
		m.delayTimer = patternScrollDelay
		m.dirty = true
	}

	if m.soundTimer > 0 {
		if m.soundTimer == 1 {
			beep()
		}
		m.soundTimer--
	}
}

func (m *PatternMachine) Keypress(button uint8, pressed bool) {
	if int(button) >= len(m.keys) || m.keys[button] == pressed {
		return
	}
	m.keys[button] = pressed
	if pressed {
		m.soundTimer = patternKeySound
	}
	m.dirty = true
}

func (m *PatternMachine) Display() *video.Display {
	return m.display
}

// Ticks returns the number of instruction steps executed.
func (m *PatternMachine) Ticks() uint64 {
	return m.ticks
}

func (m *PatternMachine) redraw() {
	m.display.Clear()

	if len(m.rom) > 0 {
		for y := 0; y < display.ScreenHeight; y++ {
			for x := 0; x < display.ScreenWidth; x++ {
				i := ((m.offset+y)*patternRowBytes + x/8) % len(m.rom)
				m.display.SetPixel(x, y, m.rom[i]&(0x80>>(x%8)) != 0)
			}
		}
	}

	// 2x2 cells in the bottom right 8x8 corner, lit while pressed
	originX := display.ScreenWidth - 8
	originY := display.ScreenHeight - 8
	for button, cell := range keypadCells {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				m.display.SetPixel(originX+cell[0]*2+dx, originY+cell[1]*2+dy, m.keys[button])
			}
		}
	}
}

var _ Machine = (*PatternMachine)(nil)
