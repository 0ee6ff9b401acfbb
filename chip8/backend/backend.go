package backend

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete host platform (rendering + input + audio)
// Backends are responsible for:
// - Translating platform-specific input events to Actions
// - Providing a Surface the host renders the display onto
// - Optionally opening an audio device (see audio.Opener)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling PollEvents.
	Init(config BackendConfig) error

	// PollEvents drains pending platform events without blocking and
	// returns them translated to actions. Unmapped keys are dropped.
	PollEvents() ([]InputEvent, error)

	// Surface returns the drawing target for the display.
	Surface() video.Surface

	// Cleanup resources when shutting down
	Cleanup() error
}

// InputEvent is a platform event translated to an action
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title string
	Scale int
	Clock timing.Clock // Time source shared with the host loop
}
