package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = display.ScreenWidth
	height = display.ScreenHeight

	screenTop     = 1 // first row of the machine screen, below the title
	screenRows    = height / 2
	minTermWidth  = width + 2
	minTermHeight = screenRows + 4
	logCapacity   = 100
)

// Terminals report key presses (with auto-repeat) but never key releases.
// A keypad key counts as held while repeats keep arriving within keyTimeout.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	config     backend.BackendConfig
	canvas     *surface
	logBuffer  *render.LogBuffer
	eventQueue []backend.InputEvent // Host actions collected since the last poll
	signals    chan os.Signal
	prevLogger *slog.Logger // Restored on Cleanup

	keyStates  map[action.Action]time.Time // Last time each keypad key was seen
	activeKeys map[action.Action]bool      // Keypad keys held in the previous poll
}

// surface draws onto an off-screen canvas and blits it to the terminal on Present
type surface struct {
	*video.ImageSurface
	t *Backend
}

func (s *surface) Present() {
	s.ImageSurface.Present()
	s.t.draw()
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.setup(screen, config)

	t.redirectLogs()
	slog.Info("Terminal backend initialized")

	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	return nil
}

// setup wires an already initialized screen, shared with tests using a
// simulation screen
func (t *Backend) setup(screen tcell.Screen, config backend.BackendConfig) {
	t.screen = screen
	t.config = config
	if t.config.Clock == nil {
		t.config.Clock = timing.SystemClock
	}
	t.canvas = &surface{ImageSurface: video.NewImageSurface(width, height), t: t}
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.signals = make(chan os.Signal, 1)

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
}

// PollEvents drains pending terminal events and returns keypad presses and
// releases plus host actions
func (t *Backend) PollEvents() ([]backend.InputEvent, error) {
	if t.screen == nil {
		return nil, fmt.Errorf("terminal backend not initialized")
	}
	now := t.config.Clock.Now()

	select {
	case <-t.signals:
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}
		currentlyActive[act] = true
		if !t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	t.activeKeys = currentlyActive

	// Host actions come last so a quit never swallows the key updates before it
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	return events, nil
}

func (t *Backend) Surface() video.Surface {
	return t.canvas
}

// OpenAudio opens the terminal bell as the audio device. The bell has no
// sample stream, so no source is created.
func (t *Backend) OpenAudio(desired audio.Spec, _ func(obtained audio.Spec) audio.Source) (audio.Device, error) {
	if t.screen == nil {
		return nil, fmt.Errorf("terminal backend not initialized")
	}
	slog.Info("Using terminal bell for audio", "requested_rate", desired.SampleRate)
	return &bell{screen: t.screen}, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		signal.Stop(t.signals)
		t.screen.Fini()
		t.screen = nil
	}
	t.restoreLogs()
	return nil
}

// redirectLogs routes the default logger to the on-screen log panel while
// the terminal is owned by the backend
func (t *Backend) redirectLogs() {
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelInfo)))
}

func (t *Backend) restoreLogs() {
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
}

// keyName converts a tcell key event to the key names used by the input package
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "Escape", true
	case tcell.KeyF12:
		return "F12", true
	case tcell.KeyRune:
		return string(unicode.ToLower(ev.Rune())), true
	default:
		return "", false
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	name, ok := keyName(ev)
	if !ok {
		return
	}
	act, ok := input.Lookup(name)
	if !ok {
		return
	}

	if action.GetInfo(act).Category == action.CategoryGameInput {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) draw() {
	if t.screen == nil {
		return
	}

	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		t.screen.Show()
		return
	}

	t.drawText(1, 0, termWidth, " "+t.config.Title+" ", tcell.StyleDefault.Foreground(tcell.ColorYellow))
	t.drawScreen()
	t.drawLogs(screenTop+screenRows+1, termWidth, termHeight)
	t.drawText(0, termHeight-1, termWidth, " Keypad: 1234/QWER/ASDF/ZXCV  F12=snapshot  ESC=exit ", tcell.StyleDefault)

	t.screen.Show()
}

func (t *Backend) drawScreen() {
	img := t.canvas.Image()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := img.RGBAAt(x, y) == display.Foreground
			bottom := img.RGBAAt(x, y+1) == display.Foreground
			t.screen.SetContent(x, screenTop+y/2, render.HalfBlock(top, bottom), nil, style)
		}
	}
}

func (t *Backend) drawLogs(startY, termWidth, termHeight int) {
	available := termHeight - startY - 1
	if available <= 0 {
		return
	}

	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(available) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		}
		t.drawText(0, startY+i, termWidth, render.FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		if col >= maxWidth {
			return
		}
		t.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}

// bell plays beeps on the terminal bell
type bell struct {
	screen tcell.Screen
}

func (b *bell) Resume() {
	if err := b.screen.Beep(); err != nil {
		slog.Debug("Terminal bell failed", "error", err)
	}
}

func (b *bell) Pause() {}

func (b *bell) Close() error {
	return nil
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ audio.Opener    = (*Backend)(nil)
)
