//go:build !sdl2

package sdl2

import (
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend stub for when SDL2 is not available
type Backend struct{}

// New creates a stub SDL2 backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating SDL2 is not available
func (s *Backend) Init(config backend.BackendConfig) error {
	return ErrNotAvailable
}

// PollEvents returns an error
func (s *Backend) PollEvents() ([]backend.InputEvent, error) {
	return nil, ErrNotAvailable
}

// Surface returns nil
func (s *Backend) Surface() video.Surface {
	return nil
}

// Cleanup does nothing
func (s *Backend) Cleanup() error {
	return nil
}

var _ backend.Backend = (*Backend)(nil)
