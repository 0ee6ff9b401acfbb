package timing

import "time"

// FrameDuration is the target duration of a single frame (60 Hz).
const FrameDuration = (1000 / 60) * time.Millisecond

// Limiter controls frame rate timing for the host loop.
type Limiter interface {
	// WaitForNextFrame blocks until frameDuration has passed since
	// frameStart. Returns immediately if the frame overran; the overrun is
	// dropped, not carried into the next frame.
	WaitForNextFrame(frameStart time.Time)

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for benchmarks).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame(time.Time) {}
func (n *noOpLimiter) Reset()                     {}

// SleepLimiter suspends the caller for whatever is left of the frame.
type SleepLimiter struct {
	clock         Clock
	frameDuration time.Duration
	overruns      int64
}

func NewSleepLimiter(clock Clock, frameDuration time.Duration) *SleepLimiter {
	return &SleepLimiter{
		clock:         clock,
		frameDuration: frameDuration,
	}
}

func (l *SleepLimiter) WaitForNextFrame(frameStart time.Time) {
	elapsed := l.clock.Now().Sub(frameStart)
	if elapsed < l.frameDuration {
		l.clock.Sleep(l.frameDuration - elapsed)
		return
	}
	l.overruns++
}

func (l *SleepLimiter) Reset() {
	l.overruns = 0
}

// Overruns returns the number of frames that took longer than the target.
func (l *SleepLimiter) Overruns() int64 {
	return l.overruns
}
