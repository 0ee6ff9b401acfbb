package timing

import (
	"sync"
	"time"
)

// Clock is the source of time for the host loop and the audio beeper.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock is a simulated clock: Sleep advances time instantly. Headless
// runs use it to execute at full speed with exact frame timing.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// FrameClock decides when the next timer step is due. It fires at most once
// per observed frame boundary and never catches up on missed frames.
type FrameClock struct {
	duration time.Duration
	last     time.Time
}

func NewFrameClock(duration time.Duration, start time.Time) *FrameClock {
	return &FrameClock{
		duration: duration,
		last:     start,
	}
}

// Due reports whether at least one frame duration passed since the last Mark.
func (c *FrameClock) Due(now time.Time) bool {
	return now.Sub(c.last) >= c.duration
}

// Mark records now as the reference point for the next Due check.
func (c *FrameClock) Mark(now time.Time) {
	c.last = now
}
