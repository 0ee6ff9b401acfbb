package audio

import (
	"sync"
	"time"

	"github.com/valerio/go-chip8/chip8/timing"
)

// BeepDuration is how long a triggered beep plays.
const BeepDuration = 50 * time.Millisecond

// Beeper plays a short fixed-length tone when triggered.
type Beeper interface {
	Beep()
}

// BlockingBeeper resumes the device, sleeps for the beep duration and pauses
// again. The caller is blocked for the whole beep.
type BlockingBeeper struct {
	device   Device
	clock    timing.Clock
	duration time.Duration
}

func NewBlockingBeeper(device Device, clock timing.Clock, duration time.Duration) *BlockingBeeper {
	return &BlockingBeeper{
		device:   device,
		clock:    clock,
		duration: duration,
	}
}

func (b *BlockingBeeper) Beep() {
	b.device.Resume()
	b.clock.Sleep(b.duration)
	b.device.Pause()
}

type beepState int

const (
	beepSilent beepState = iota
	beepRinging
)

// TimedBeeper is a non-blocking Beeper. Beep starts the tone and returns;
// Update, called once per frame, stops it when its duration has elapsed.
type TimedBeeper struct {
	mu       sync.Mutex
	device   Device
	clock    timing.Clock
	duration time.Duration
	state    beepState
	until    time.Time
}

func NewTimedBeeper(device Device, clock timing.Clock, duration time.Duration) *TimedBeeper {
	return &TimedBeeper{
		device:   device,
		clock:    clock,
		duration: duration,
	}
}

// Beep starts a beep. Triggering while ringing restarts the window, so each
// trigger plays at most one duration.
func (b *TimedBeeper) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.until = b.clock.Now().Add(b.duration)
	if b.state == beepSilent {
		b.state = beepRinging
		b.device.Resume()
	}
}

// Update silences the device once the current beep has run its course.
func (b *TimedBeeper) Update(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == beepRinging && !now.Before(b.until) {
		b.state = beepSilent
		b.device.Pause()
	}
}

// Ringing reports whether a beep is currently playing.
func (b *TimedBeeper) Ringing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == beepRinging
}

// Silent is a Beeper for hosts without an audio device.
type Silent struct{}

func (Silent) Beep() {}
