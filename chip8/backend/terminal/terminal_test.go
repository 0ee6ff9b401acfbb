package terminal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

func newSimBackend(t *testing.T) (*Backend, *timing.ManualClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)

	clock := timing.NewManualClock(time.Unix(0, 0))
	b := New()
	b.setup(screen, backend.BackendConfig{Title: "test", Scale: 1, Clock: clock})
	t.Cleanup(func() { _ = b.Cleanup() })
	return b, clock
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
		ok   bool
	}{
		{"lowercase rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "q", true},
		{"uppercase rune", tcell.NewEventKey(tcell.KeyRune, 'V', tcell.ModShift), "v", true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape", true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "Escape", true},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), "F12", true},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyName(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPollEvents_KeyPressAndTimeoutRelease(t *testing.T) {
	b, clock := newSimBackend(t)

	b.processKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), clock.Now())
	events, err := b.PollEvents()
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.Keypad4, Type: event.Press}}, events)

	// Auto-repeat keeps the key held without a second press
	clock.Advance(50 * time.Millisecond)
	b.processKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), clock.Now())
	events, err = b.PollEvents()
	require.NoError(t, err)
	assert.Empty(t, events)

	clock.Advance(keyTimeout)
	events, err = b.PollEvents()
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.Keypad4, Type: event.Release}}, events)

	events, err = b.PollEvents()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestPollEvents_HostActions(t *testing.T) {
	b, clock := newSimBackend(t)

	b.processKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), clock.Now())
	b.processKeyEvent(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), clock.Now())
	b.processKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), clock.Now())
	b.processKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), clock.Now())

	events, err := b.PollEvents()
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{
		{Action: action.Keypad0, Type: event.Press},
		{Action: action.EmulatorSnapshot, Type: event.Press},
		{Action: action.EmulatorQuit, Type: event.Press},
	}, events)
}

func TestPollEvents_NotInitialized(t *testing.T) {
	_, err := New().PollEvents()
	assert.Error(t, err)
}

func TestSurface_PresentDrawsHalfBlocks(t *testing.T) {
	b, _ := newSimBackend(t)

	d := video.NewDisplay(width, height)
	d.SetPixel(0, 0, true)
	d.SetPixel(1, 1, true)
	d.SetPixel(2, 0, true)
	d.SetPixel(2, 1, true)

	s := b.Surface()
	r := video.NewRenderer(video.ScaleFor(s.Bounds(), width, height))
	assert.Equal(t, 4, r.Draw(s, d))

	cell := func(x int) rune {
		mainc, _, _, _ := b.screen.GetContent(x, screenTop)
		return mainc
	}
	assert.Equal(t, '▀', cell(0))
	assert.Equal(t, '▄', cell(1))
	assert.Equal(t, '█', cell(2))
	assert.Equal(t, ' ', cell(3))
}

func TestBell_OpenAudio(t *testing.T) {
	b, _ := newSimBackend(t)

	dev, err := b.OpenAudio(audio.Spec{SampleRate: 44100, Channels: 1, Samples: 512}, nil)
	require.NoError(t, err)
	dev.Resume()
	dev.Pause()
	assert.NoError(t, dev.Close())
}

func TestCleanup_RestoresDefaultLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	b, _ := newSimBackend(t)
	b.redirectLogs()
	_, captured := slog.Default().Handler().(*render.LogBufferHandler)
	require.True(t, captured, "logs go to the log panel while running")

	slog.Info("while running")
	require.Len(t, b.logBuffer.GetRecent(0), 1)

	require.NoError(t, b.Cleanup())
	assert.Same(t, original, slog.Default())

	slog.Info("after cleanup")
	assert.Len(t, b.logBuffer.GetRecent(0), 1, "nothing is logged into the panel after cleanup")
}
