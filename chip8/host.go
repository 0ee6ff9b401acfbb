package chip8

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// State is the lifecycle state of a Host
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts what the loop has done so far
type Stats struct {
	Frames       uint64 // Loop iterations that rendered
	Instructions uint64
	TimerSteps   uint64
}

// Host runs a Machine on a Backend: it polls input, steps the machine at a
// fixed rate, advances timers at 60 Hz, renders and paces every frame.
type Host struct {
	config  Config
	machine Machine
	backend backend.Backend

	clock    timing.Clock
	frames   *timing.FrameClock
	limiter  timing.Limiter
	renderer *video.Renderer
	input    *input.Manager

	device audio.Device
	beeper audio.Beeper
	timed  *audio.TimedBeeper

	state State
	stats Stats
}

func New(config Config, machine Machine, b backend.Backend) *Host {
	defaults := DefaultConfig()
	if config.TicksPerFrame <= 0 {
		config.TicksPerFrame = defaults.TicksPerFrame
	}
	if config.FrameDuration <= 0 {
		config.FrameDuration = defaults.FrameDuration
	}
	if config.BeepDuration <= 0 {
		config.BeepDuration = defaults.BeepDuration
	}
	if config.BeepFrequency <= 0 {
		config.BeepFrequency = defaults.BeepFrequency
	}
	if config.Volume <= 0 {
		config.Volume = defaults.Volume
	}
	if config.SampleRate <= 0 {
		config.SampleRate = defaults.SampleRate
	}
	if config.Clock == nil {
		config.Clock = timing.SystemClock
	}

	return &Host{
		config:  config,
		machine: machine,
		backend: b,
		clock:   config.Clock,
		beeper:  audio.Silent{},
	}
}

// Init initializes the backend, the audio device and the input bindings.
func (h *Host) Init() error {
	err := h.backend.Init(backend.BackendConfig{
		Title: h.config.Title,
		Scale: h.config.Scale,
		Clock: h.clock,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}

	surface := h.backend.Surface()
	h.renderer = video.NewRenderer(video.ScaleFor(surface.Bounds(), display.ScreenWidth, display.ScreenHeight))

	if err := h.openAudio(); err != nil {
		_ = h.backend.Cleanup()
		return err
	}

	h.input = input.NewManager(h.machine)
	h.input.SetTimeSource(h.clock.Now)
	h.input.On(action.EmulatorQuit, event.Press, func() {
		h.state = Terminated
	})
	h.input.On(action.EmulatorSnapshot, event.Press, func() {
		debug.TakeSnapshot(h.machine.Display(), h.renderer.Scale, h.config.SnapshotDir)
	})

	h.limiter = h.config.Limiter
	if h.limiter == nil {
		h.limiter = timing.NewSleepLimiter(h.clock, h.config.FrameDuration)
	}
	h.frames = timing.NewFrameClock(h.config.FrameDuration, h.clock.Now())
	h.state = Running

	return nil
}

func (h *Host) openAudio() error {
	opener, ok := h.backend.(audio.Opener)
	if !ok {
		slog.Info("Backend has no audio output, beeps are muted")
		return nil
	}

	desired := audio.Spec{
		SampleRate: h.config.SampleRate,
		Channels:   AudioChannels,
		Samples:    AudioSamples,
	}
	device, err := opener.OpenAudio(desired, func(obtained audio.Spec) audio.Source {
		return audio.NewSquareWave(h.config.BeepFrequency, obtained.SampleRate, h.config.Volume)
	})
	if err != nil {
		return fmt.Errorf("failed to open audio: %w", err)
	}
	h.device = device

	if h.config.NonBlockingBeep {
		h.timed = audio.NewTimedBeeper(device, h.clock, h.config.BeepDuration)
		h.beeper = h.timed
	} else {
		h.beeper = audio.NewBlockingBeeper(device, h.clock, h.config.BeepDuration)
	}
	return nil
}

// Step runs one iteration of the loop: input, execution, timers, render,
// pacing. A quit stops the iteration right where it is seen.
func (h *Host) Step() error {
	if h.state == Terminated {
		return nil
	}
	if h.input == nil {
		return errors.New("host not initialized")
	}
	now := h.clock.Now()

	events, err := h.backend.PollEvents()
	if err != nil {
		return fmt.Errorf("failed to poll events: %w", err)
	}
	for _, e := range events {
		h.input.Trigger(e.Action, e.Type)
		if h.state == Terminated {
			return nil
		}
	}

	if h.frames.Due(now) {
		for i := 0; i < h.config.TicksPerFrame; i++ {
			h.machine.Tick()
		}
		h.machine.TickTimers(h.beeper.Beep)
		h.frames.Mark(now)

		h.stats.Instructions += uint64(h.config.TicksPerFrame)
		h.stats.TimerSteps++
	}

	if h.timed != nil {
		h.timed.Update(h.clock.Now())
	}

	h.renderer.Draw(h.backend.Surface(), h.machine.Display())
	h.stats.Frames++

	h.limiter.WaitForNextFrame(now)
	return nil
}

// Run steps the loop until it terminates or the backend fails.
func (h *Host) Run() error {
	slog.Info("Starting host loop", "ticks_per_frame", h.config.TicksPerFrame, "frame_duration", h.config.FrameDuration)

	for h.state == Running {
		if err := h.Step(); err != nil {
			return err
		}
	}

	attrs := []any{
		"frames", h.stats.Frames,
		"instructions", h.stats.Instructions,
		"timer_steps", h.stats.TimerSteps,
	}
	if sl, ok := h.limiter.(*timing.SleepLimiter); ok {
		attrs = append(attrs, "overruns", sl.Overruns())
	}
	slog.Info("Host loop stopped", attrs...)
	return nil
}

// Cleanup releases the audio device and the backend.
func (h *Host) Cleanup() error {
	var firstErr error
	if h.device != nil {
		if err := h.device.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close audio: %w", err)
		}
		h.device = nil
	}
	if err := h.backend.Cleanup(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to clean up backend: %w", err)
	}
	return firstErr
}

func (h *Host) State() State {
	return h.state
}

func (h *Host) Stats() Stats {
	return h.stats
}
