//go:build sdl2

package sdl2

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed backend, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	surface  *surface
	config   backend.BackendConfig
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config
	if s.config.Scale <= 0 {
		s.config.Scale = display.DefaultPixelScale
	}
	if s.config.Clock == nil {
		s.config.Clock = timing.SystemClock
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	w := int32(display.ScreenWidth * s.config.Scale)
	h := int32(display.ScreenHeight * s.config.Scale)
	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		w,
		h,
		sdl.WINDOW_SHOWN|sdl.WINDOW_OPENGL,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer
	s.surface = &surface{renderer: renderer, bounds: image.Rect(0, 0, int(w), int(h))}

	slog.Info("SDL2 backend initialized", "width", w, "height", h)
	return nil
}

// PollEvents drains the SDL event queue. Drawing errors from the previous
// frame are reported here.
func (s *Backend) PollEvents() ([]backend.InputEvent, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("SDL2 backend not initialized")
	}
	if err := s.surface.err; err != nil {
		s.surface.err = nil
		return nil, fmt.Errorf("render failed: %w", err)
	}

	var events []backend.InputEvent
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			events = append(events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
		case *sdl.KeyboardEvent:
			act, ok := input.Lookup(keyName(e.Keysym.Sym))
			if !ok {
				continue
			}
			switch {
			case e.Type == sdl.KEYDOWN && e.Repeat == 0:
				events = append(events, backend.InputEvent{Action: act, Type: event.Press})
			case e.Type == sdl.KEYUP && action.GetInfo(act).Category == action.CategoryGameInput:
				events = append(events, backend.InputEvent{Action: act, Type: event.Release})
			}
		}
	}
	return events, nil
}

func (s *Backend) Surface() video.Surface {
	return s.surface
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()

	return nil
}

// keyName returns the input package name of an SDL key: single characters
// in lowercase, everything else as SDL names it ("Escape", "F12").
func keyName(code sdl.Keycode) string {
	name := sdl.GetKeyName(code)
	if len(name) == 1 {
		return strings.ToLower(name)
	}
	return name
}

// surface draws straight onto the window renderer. SDL errors are kept
// until the next poll since Surface methods cannot fail.
type surface struct {
	renderer *sdl.Renderer
	bounds   image.Rectangle
	err      error
}

func (s *surface) Bounds() image.Rectangle {
	return s.bounds
}

func (s *surface) SetDrawColor(c color.RGBA) {
	s.check(s.renderer.SetDrawColor(c.R, c.G, c.B, c.A))
}

func (s *surface) Clear() {
	s.check(s.renderer.Clear())
}

func (s *surface) FillRect(r image.Rectangle) {
	s.check(s.renderer.FillRect(&sdl.Rect{
		X: int32(r.Min.X),
		Y: int32(r.Min.Y),
		W: int32(r.Dx()),
		H: int32(r.Dy()),
	}))
}

func (s *surface) Present() {
	s.renderer.Present()
}

func (s *surface) check(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

var _ backend.Backend = (*Backend)(nil)
