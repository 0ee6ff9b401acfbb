package audio

import "math"

const twoPi = 2 * math.Pi

// SquareWave generates a square wave at a fixed frequency and volume.
type SquareWave struct {
	phase    float64
	phaseInc float64
	volume   float32
}

// NewSquareWave creates a generator for a tone of frequency Hz at the given
// device sample rate. A non-positive rate yields a silent generator.
func NewSquareWave(frequency float64, sampleRate int, volume float32) *SquareWave {
	if sampleRate <= 0 {
		return &SquareWave{}
	}
	return &SquareWave{
		phaseInc: frequency * twoPi / float64(sampleRate),
		volume:   volume,
	}
}

// Fill writes +volume while sin(phase) >= 0 and -volume otherwise, advancing
// the phase by one increment per sample. Phase stays within [0, 2π).
func (w *SquareWave) Fill(out []float32) {
	for i := range out {
		if math.Sin(w.phase) >= 0 {
			out[i] = w.volume
		} else {
			out[i] = -w.volume
		}
		w.phase = math.Mod(w.phase+w.phaseInc, twoPi)
	}
}

// Period returns the length of one wave cycle in samples.
func (w *SquareWave) Period() float64 {
	return twoPi / w.phaseInc
}

func (w *SquareWave) Phase() float64 {
	return w.phase
}
