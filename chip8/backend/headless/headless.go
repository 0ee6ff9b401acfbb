package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend implements the Backend interface for automated testing and batch processing.
// It renders off-screen, replays scripted input and records audio.
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	surface        *surface
	script         map[int][]backend.InputEvent
	recorder       *audio.Recorder
	wavPath        string
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	ROMName   string // ROM name for snapshot filenames
}

// surface counts presented frames so snapshots see complete frames only
type surface struct {
	*video.ImageSurface
	onPresent func()
}

func (s *surface) Present() {
	s.ImageSurface.Present()
	if s.onPresent != nil {
		s.onPresent()
	}
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
		script:         make(map[int][]backend.InputEvent),
	}
}

// Queue schedules events to be returned by PollEvents at the start of the
// given frame (1-based).
func (h *Backend) Queue(frame int, events ...backend.InputEvent) {
	h.script[frame] = append(h.script[frame], events...)
}

// RecordAudio makes the audio device write everything it plays to a WAV file
// when the backend is cleaned up.
func (h *Backend) RecordAudio(path string) {
	h.wavPath = path
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config
	if h.config.Clock == nil {
		h.config.Clock = timing.SystemClock
	}

	scale := config.Scale
	if scale < 1 {
		scale = 1
	}
	h.surface = &surface{
		ImageSurface: video.NewImageSurface(display.ScreenWidth*scale, display.ScreenHeight*scale),
		onPresent:    h.framePresented,
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// PollEvents returns the scripted events of the frame that is starting, plus
// a quit event once the frame budget is spent.
func (h *Backend) PollEvents() ([]backend.InputEvent, error) {
	if h.surface == nil {
		return nil, fmt.Errorf("headless backend not initialized")
	}

	frame := h.frameCount + 1
	events := h.script[frame]
	delete(h.script, frame)

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.maxFrames, "png_snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.maxFrames)
		}
		events = append(events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	}

	return events, nil
}

func (h *Backend) Surface() video.Surface {
	return h.surface
}

// Image returns the last presented frame.
func (h *Backend) Image() *video.ImageSurface {
	if h.surface == nil {
		return nil
	}
	return h.surface.ImageSurface
}

// FrameCount returns the number of frames presented so far.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// OpenAudio opens a recording device driven by the backend clock.
func (h *Backend) OpenAudio(desired audio.Spec, newSource func(obtained audio.Spec) audio.Source) (audio.Device, error) {
	if h.config.Clock == nil {
		return nil, fmt.Errorf("headless backend not initialized")
	}
	h.recorder = audio.NewRecorder(desired, newSource(desired), h.config.Clock, h.wavPath)
	return h.recorder, nil
}

// Recorder returns the audio device opened by OpenAudio, if any.
func (h *Backend) Recorder() *audio.Recorder {
	return h.recorder
}

func (h *Backend) Cleanup() error {
	return nil
}

func (h *Backend) framePresented() {
	h.frameCount++

	// Save snapshot if needed
	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot()
	}

	// Log progress periodically
	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "chip8-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	// Extract ROM name for snapshot filenames
	config.ROMName = filepath.Base(romPath)
	config.ROMName = strings.TrimSuffix(config.ROMName, filepath.Ext(config.ROMName))

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot() {
	pngBaseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.ROMName, h.frameCount)

	if _, err := debug.SavePNGToDir(h.surface.Image(), pngBaseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
	}
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ audio.Opener    = (*Backend)(nil)
)
