package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

const (
	// debounceDuration is the minimum time between two presses of a host action
	debounceDuration = 300 * time.Millisecond
)

// Keypad receives logical button state changes
type Keypad interface {
	Keypress(button uint8, pressed bool)
}

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]time.Time
	keypad        Keypad
	now           func() time.Time
}

func NewManager(k Keypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]time.Time),
		keypad:        k,
		now:           time.Now,
	}
}

// SetTimeSource replaces the clock used for debouncing.
func (m *Manager) SetTimeSource(now func() time.Time) {
	m.now = now
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	// Keypad buttons go straight to the machine, never debounced
	if button, ok := act.Button(); ok {
		if m.keypad != nil {
			m.keypad.Keypress(button, evt == event.Press)
		}
		return
	}

	// Host actions fire on press, debounced
	if evt == event.Press {
		now := m.now()
		if last, seen := m.lastTriggered[act]; seen && now.Sub(last) < debounceDuration {
			return
		}
		m.lastTriggered[act] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
