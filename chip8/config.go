package chip8

import (
	"time"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/timing"
)

const (
	// TicksPerFrame is the number of instruction steps per 60 Hz frame
	TicksPerFrame = 10

	BeepFrequency   = 440.0
	BeepVolume      = 0.10
	AudioSampleRate = 44100
	AudioChannels   = 1
	AudioSamples    = 512
)

// Config holds the host loop settings
type Config struct {
	Title         string
	TicksPerFrame int
	FrameDuration time.Duration
	Scale         int // Pixel scale requested from the backend

	BeepDuration    time.Duration
	BeepFrequency   float64
	Volume          float32
	SampleRate      int  // Requested rate, the device may pick another
	NonBlockingBeep bool // Ring beeps across frames instead of holding the loop

	SnapshotDir string // F12 snapshots, current directory if empty

	Clock   timing.Clock
	Limiter timing.Limiter // Defaults to sleeping out the frame on Clock
}

// DefaultConfig returns the settings of the desktop frontend
func DefaultConfig() Config {
	return Config{
		Title:         "CHIP-8 Emulator",
		TicksPerFrame: TicksPerFrame,
		FrameDuration: timing.FrameDuration,
		Scale:         display.DefaultPixelScale,
		BeepDuration:  audio.BeepDuration,
		BeepFrequency: BeepFrequency,
		Volume:        BeepVolume,
		SampleRate:    AudioSampleRate,
		Clock:         timing.SystemClock,
	}
}
