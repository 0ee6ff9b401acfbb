package audio

// Spec describes an audio output format, as requested by the host or as
// negotiated by the device.
type Spec struct {
	SampleRate int
	Channels   int
	Samples    int // device buffer size in sample frames
}

// Source produces samples on demand. Fill is called from the device's pull
// context only.
type Source interface {
	Fill(out []float32)
}

// Device is an opened audio output.
type Device interface {
	// Resume starts pulling samples from the source.
	Resume()
	// Pause stops pulling samples; the device outputs silence.
	Pause()
	Close() error
}

// Opener is implemented by backends that can play sound. newSource is
// called once with the spec the device actually obtained, so the source can
// derive its timing from the real sample rate.
type Opener interface {
	OpenAudio(desired Spec, newSource func(obtained Spec) Source) (Device, error)
}
