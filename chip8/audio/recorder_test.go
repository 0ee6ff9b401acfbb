package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/timing"
)

func TestRecorder_CapturesBeeps(t *testing.T) {
	clock := timing.NewManualClock(time.Unix(0, 0))
	spec := Spec{SampleRate: 8000, Channels: 1}
	r := NewRecorder(spec, NewSquareWave(1000, spec.SampleRate, 0.5), clock, "")

	clock.Advance(100 * time.Millisecond)
	NewBlockingBeeper(r, clock, BeepDuration).Beep()

	samples := r.Samples()
	require.Len(t, samples, 800+400)

	for _, s := range samples[:800] {
		assert.Equal(t, float32(0), s, "silence before the beep")
	}
	for _, s := range samples[800:] {
		assert.True(t, s == 0.5 || s == -0.5)
	}
	require.NoError(t, r.Close())
}

func TestRecorder_ResumeAndPauseAreIdempotent(t *testing.T) {
	clock := timing.NewManualClock(time.Unix(0, 0))
	r := NewRecorder(Spec{SampleRate: 1000}, NewSquareWave(100, 1000, 1), clock, "")

	r.Resume()
	clock.Advance(10 * time.Millisecond)
	r.Resume()
	clock.Advance(10 * time.Millisecond)
	r.Pause()
	r.Pause()

	assert.Len(t, r.Samples(), 20)
}

func TestRecorder_WritesWAV(t *testing.T) {
	clock := timing.NewManualClock(time.Unix(0, 0))
	path := filepath.Join(t.TempDir(), "beep.wav")
	r := NewRecorder(Spec{SampleRate: 44100, Channels: 1}, NewSquareWave(440, 44100, 0.1), clock, path)

	r.Resume()
	clock.Advance(BeepDuration)
	require.NoError(t, r.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 44100, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Len(t, buf.Data, 2205)
}

func TestRecorder_SilenceIsStoredAsLength(t *testing.T) {
	clock := timing.NewManualClock(time.Unix(0, 0))
	path := filepath.Join(t.TempDir(), "quiet.wav")
	spec := Spec{SampleRate: 8000, Channels: 1}
	r := NewRecorder(spec, NewSquareWave(1000, spec.SampleRate, 0.5), clock, path)

	clock.Advance(5 * time.Second)
	r.Pause()
	clock.Advance(5 * time.Second)
	r.Resume()
	clock.Advance(50 * time.Millisecond)
	r.Pause()
	clock.Advance(2500 * time.Millisecond)

	require.NoError(t, r.Close())
	require.Len(t, r.segments, 3)
	assert.Equal(t, segment{silent: 80000}, r.segments[0])
	assert.Len(t, r.segments[1].samples, 400)
	assert.Equal(t, 20000, r.segments[2].silent)
	assert.Nil(t, r.segments[2].samples)

	samples := r.Samples()
	require.Len(t, samples, 80000+400+20000)
	assert.Equal(t, float32(0), samples[79999])
	assert.Equal(t, float32(0.5), samples[80000])

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, len(samples))
	assert.Equal(t, 0, buf.Data[0])
	assert.NotEqual(t, 0, buf.Data[80000])
	assert.Equal(t, 0, buf.Data[len(buf.Data)-1])
}

func TestRecorder_CloseReportsWriteFailure(t *testing.T) {
	clock := timing.NewManualClock(time.Unix(0, 0))
	path := filepath.Join(t.TempDir(), "missing", "out.wav")
	r := NewRecorder(Spec{SampleRate: 1000}, NewSquareWave(100, 1000, 1), clock, path)

	clock.Advance(10 * time.Millisecond)
	assert.Error(t, r.Close())
}
