package synth

import (
	"fmt"
	"math"
)

// Waveform selects the oscillator shape for a tone.
type Waveform int

const (
	// Sine is a pure sine oscillator.
	Sine Waveform = iota
	// Square alternates between -1 and +1.
	Square
	// Sawtooth ramps from -1 to +1 and snaps back.
	Sawtooth
	// Triangle ramps linearly up and down between -1 and +1.
	Triangle
)

// String returns the lowercase waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

// Valid reports whether w is one of the four defined waveforms.
func (w Waveform) Valid() bool {
	return w >= Sine && w <= Triangle
}

// ParseWaveform converts a waveform name to its Waveform value.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "sawtooth":
		return Sawtooth, nil
	case "triangle":
		return Triangle, nil
	default:
		return 0, fmt.Errorf("%w: unknown waveform %q", ErrInvalidSpec, name)
	}
}

// oscillate evaluates one waveform at x cycles. x is frequency times
// elapsed seconds; the result is a raw amplitude in [-1, 1].
func oscillate(w Waveform, x float64) float64 {
	switch w {
	case Square:
		return square(x)
	case Sawtooth:
		return sawtooth(x)
	case Triangle:
		return triangle(x)
	default:
		return sine(x)
	}
}

func sine(x float64) float64 {
	return math.Sin(2 * math.Pi * x)
}

// square maps the sine's sign to full amplitude. The tie at exactly
// zero resolves to -1, so the first sample of any square tone is -1.
func square(x float64) float64 {
	if math.Sin(2*math.Pi*x) > 0 {
		return 1
	}
	return -1
}

func sawtooth(x float64) float64 {
	return 2 * (x - math.Floor(x+0.5))
}

func triangle(x float64) float64 {
	return math.Abs(2*(x-math.Floor(x+0.5)))*2 - 1
}
