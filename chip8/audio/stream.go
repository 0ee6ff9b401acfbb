package audio

import "sync/atomic"

// Stream gates a Source with a resume/pause flag. The flag is the only state
// shared between the main loop and the device's pull context; the source
// itself is touched by the pull context only.
type Stream struct {
	source  Source
	playing atomic.Bool
}

func NewStream(source Source) *Stream {
	return &Stream{source: source}
}

func (s *Stream) Resume() {
	s.playing.Store(true)
}

func (s *Stream) Pause() {
	s.playing.Store(false)
}

func (s *Stream) Playing() bool {
	return s.playing.Load()
}

// Read fills out from the source while playing, with silence otherwise.
func (s *Stream) Read(out []float32) {
	if !s.playing.Load() {
		for i := range out {
			out[i] = 0
		}
		return
	}
	s.source.Fill(out)
}
