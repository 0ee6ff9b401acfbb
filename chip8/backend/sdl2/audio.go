//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unsafe"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/veandco/go-sdl2/sdl"
)

// queuedBuffers is how many device buffers the pump keeps queued ahead
const queuedBuffers = 2

// OpenAudio opens the default SDL output device. The device may change the
// sample rate, the source is built from what it reports.
func (s *Backend) OpenAudio(desired audio.Spec, newSource func(obtained audio.Spec) audio.Source) (audio.Device, error) {
	want := &sdl.AudioSpec{
		Freq:     int32(desired.SampleRate),
		Format:   sdl.AUDIO_F32SYS,
		Channels: uint8(desired.Channels),
		Samples:  uint16(desired.Samples),
	}
	var got sdl.AudioSpec

	id, err := sdl.OpenAudioDevice("", false, want, &got, sdl.AUDIO_ALLOW_FREQUENCY_CHANGE)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}

	obtained := audio.Spec{
		SampleRate: int(got.Freq),
		Channels:   int(got.Channels),
		Samples:    int(got.Samples),
	}
	if obtained.Samples <= 0 {
		obtained.Samples = desired.Samples
	}
	slog.Info("Audio device opened", "rate", obtained.SampleRate, "channels", obtained.Channels, "samples", obtained.Samples)

	d := &device{
		id:     id,
		stream: audio.NewStream(newSource(obtained)),
		buf:    make([]float32, obtained.Samples*obtained.Channels),
		done:   make(chan struct{}),
	}
	period := time.Duration(float64(obtained.Samples) / float64(obtained.SampleRate) * float64(time.Second))
	d.wg.Add(1)
	go d.pump(period)

	return d, nil
}

// device feeds the SDL queue from a stream on its own goroutine, the pull
// context of the synthesizer.
type device struct {
	id     sdl.AudioDeviceID
	stream *audio.Stream
	buf    []float32
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func (d *device) pump(period time.Duration) {
	defer d.wg.Done()

	tck := time.NewTicker(period)
	defer tck.Stop()

	bufBytes := uint32(len(d.buf) * 4)
	for {
		select {
		case <-d.done:
			return
		case <-tck.C:
		}

		if !d.stream.Playing() {
			continue
		}
		for sdl.GetQueuedAudioSize(d.id) < queuedBuffers*bufBytes {
			d.stream.Read(d.buf)
			data := unsafe.Slice((*byte)(unsafe.Pointer(&d.buf[0])), bufBytes)
			if err := sdl.QueueAudio(d.id, data); err != nil {
				slog.Debug("Audio queue failed", "error", err)
				break
			}
		}
	}
}

func (d *device) Resume() {
	d.stream.Resume()
	sdl.PauseAudioDevice(d.id, false)
}

func (d *device) Pause() {
	d.stream.Pause()
	sdl.PauseAudioDevice(d.id, true)
	sdl.ClearQueuedAudio(d.id)
}

func (d *device) Close() error {
	d.once.Do(func() {
		close(d.done)
		d.wg.Wait()
		sdl.CloseAudioDevice(d.id)
	})
	return nil
}

var _ audio.Opener = (*Backend)(nil)
