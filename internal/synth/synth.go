// Package synth generates game feedback tones as normalized sample buffers.
package synth

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpec is returned when a tone spec or sample rate is out of range.
var ErrInvalidSpec = errors.New("invalid tone spec")

const (
	// headroom scales every tone down so simultaneously playing
	// sounds mix without clipping.
	headroom = 0.3

	// fadeTime is the length in seconds of the linear fade-in and
	// fade-out ramps that remove clicks at the buffer edges.
	fadeTime = 0.01
)

// ToneSpec describes a single synthesized tone.
type ToneSpec struct {
	// Name is the registry key for the tone.
	Name string
	// Frequency is the tone pitch in Hz. Must be positive.
	Frequency float64
	// Duration is the tone length in seconds. Must be positive.
	Duration float64
	// Waveform selects the oscillator shape.
	Waveform Waveform
}

// Validate checks the spec's frequency, duration, and waveform.
func (s ToneSpec) Validate() error {
	if s.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalidSpec, s.Frequency)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidSpec, s.Duration)
	}
	if !s.Waveform.Valid() {
		return fmt.Errorf("%w: unknown waveform %v", ErrInvalidSpec, s.Waveform)
	}
	return nil
}

// Synthesize renders the tone into a buffer of round(Duration * sampleRate)
// samples, each in [-1, 1]. Rendering is deterministic: the same spec and
// sample rate always produce the same buffer.
func Synthesize(spec ToneSpec, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidSpec, sampleRate)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := int(math.Round(spec.Duration * float64(sampleRate)))
	fade := fadeTime * float64(sampleRate)

	buf := make([]float64, n)
	for i := range buf {
		t := float64(i) / float64(sampleRate)
		raw := oscillate(spec.Waveform, spec.Frequency*t)
		env := min(1, float64(i)/fade, float64(n-i)/fade)
		buf[i] = raw * env * headroom
	}

	return buf, nil
}
