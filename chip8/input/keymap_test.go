package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
)

func TestButton_KeypadTable(t *testing.T) {
	tests := []struct {
		key    string
		button uint8
	}{
		{"1", 0x1}, {"2", 0x2}, {"3", 0x3}, {"4", 0xC},
		{"q", 0x4}, {"w", 0x5}, {"e", 0x6}, {"r", 0xD},
		{"a", 0x7}, {"s", 0x8}, {"d", 0x9}, {"f", 0xE},
		{"z", 0xA}, {"x", 0x0}, {"c", 0xB}, {"v", 0xF},
	}

	seen := make(map[uint8]bool)
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			button, ok := Button(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.button, button)
		})
		seen[tt.button] = true
	}
	assert.Len(t, seen, 16, "every logical button is reachable")
	assert.Len(t, keypad, 16)
}

func TestButton_Unmapped(t *testing.T) {
	for _, key := range []string{"", "5", "t", "Q", "Escape", "F12", "Space", "Enter", "0", "b", "ñ"} {
		button, ok := Button(key)
		assert.False(t, ok, "key %q should be unmapped", key)
		assert.Equal(t, uint8(0), button)
	}
}

func TestLookup(t *testing.T) {
	act, ok := Lookup("Escape")
	assert.True(t, ok)
	assert.Equal(t, action.EmulatorQuit, act)

	act, ok = Lookup("F12")
	assert.True(t, ok)
	assert.Equal(t, action.EmulatorSnapshot, act)

	act, ok = Lookup("v")
	assert.True(t, ok)
	assert.Equal(t, action.KeypadF, act)

	_, ok = Lookup("m")
	assert.False(t, ok)
}

func TestActionButtonRoundTrip(t *testing.T) {
	for b := uint8(0); b < action.KeypadButtons; b++ {
		act, ok := action.ForButton(b)
		assert.True(t, ok)
		got, ok := act.Button()
		assert.True(t, ok)
		assert.Equal(t, b, got)
		assert.Equal(t, action.CategoryGameInput, action.GetInfo(act).Category)
	}

	_, ok := action.ForButton(16)
	assert.False(t, ok)
	_, ok = action.EmulatorQuit.Button()
	assert.False(t, ok)
	assert.Equal(t, action.CategoryEmulator, action.GetInfo(action.EmulatorQuit).Category)
}
