package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/valerio/go-chip8/chip8/timing"
)

const (
	wavBitDepth     = 16
	wavPCMFormat    = 1
	wavMaxAmplitude = math.MaxInt16
)

// Recorder is a Device that captures output instead of playing it. Time is
// taken from a clock: while resumed, the samples the source would have played
// in that time are pulled and kept; while paused, only the length of the
// silence is kept. On Close the capture is written to a WAV file if a path
// was given.
type Recorder struct {
	mu       sync.Mutex
	spec     Spec
	stream   *Stream
	clock    timing.Clock
	mark     time.Time
	segments []segment
	path     string
}

// segment is either a run of silence or a run of played samples
type segment struct {
	silent  int
	samples []float32
}

func (s segment) len() int {
	return s.silent + len(s.samples)
}

// NewRecorder opens a recorder. path may be empty to keep samples in memory only.
func NewRecorder(spec Spec, source Source, clock timing.Clock, path string) *Recorder {
	return &Recorder{
		spec:   spec,
		stream: NewStream(source),
		clock:  clock,
		mark:   clock.Now(),
		path:   path,
	}
}

func (r *Recorder) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream.Playing() {
		return
	}
	r.capture()
	r.stream.Resume()
}

func (r *Recorder) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.stream.Playing() {
		return
	}
	r.capture()
	r.stream.Pause()
}

// capture accounts for the time since the last mark.
func (r *Recorder) capture() {
	now := r.clock.Now()
	n := int(math.Round(now.Sub(r.mark).Seconds() * float64(r.spec.SampleRate)))
	r.mark = now
	if n <= 0 {
		return
	}

	if !r.stream.Playing() {
		if last := len(r.segments) - 1; last >= 0 && r.segments[last].samples == nil {
			r.segments[last].silent += n
			return
		}
		r.segments = append(r.segments, segment{silent: n})
		return
	}

	buf := make([]float32, n)
	r.stream.Read(buf)
	r.segments = append(r.segments, segment{samples: buf})
}

// Samples returns everything captured so far, silence included.
func (r *Recorder) Samples() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, seg := range r.segments {
		total += seg.len()
	}
	out := make([]float32, 0, total)
	for _, seg := range r.segments {
		if seg.samples == nil {
			out = append(out, make([]float32, seg.silent)...)
			continue
		}
		out = append(out, seg.samples...)
	}
	return out
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.capture()
	r.stream.Pause()
	if r.path == "" {
		return nil
	}
	return writeWAV(r.path, r.spec.SampleRate, r.segments)
}

func writeWAV(path string, sampleRate int, segments []segment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	format := &goaudio.Format{NumChannels: 1, SampleRate: sampleRate}
	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, 1, wavPCMFormat)
	write := func(data []int) error {
		return enc.Write(&goaudio.IntBuffer{Format: format, Data: data, SourceBitDepth: wavBitDepth})
	}

	// silence goes out in chunks of at most one second
	chunk := sampleRate
	if chunk < 1 {
		chunk = 1
	}
	zeros := make([]int, chunk)

	for _, seg := range segments {
		for left := seg.silent; left > 0; left -= chunk {
			if err := write(zeros[:min(left, chunk)]); err != nil {
				return fmt.Errorf("failed to encode wav: %w", err)
			}
		}
		if len(seg.samples) == 0 {
			continue
		}
		data := make([]int, len(seg.samples))
		for i, s := range seg.samples {
			data[i] = int(s * wavMaxAmplitude)
		}
		if err := write(data); err != nil {
			return fmt.Errorf("failed to encode wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish wav: %w", err)
	}
	return nil
}
