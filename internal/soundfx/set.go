package soundfx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xpira/linguafx/internal/synth"
)

// Definition is one tone entry in a sound-set file.
type Definition struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
	Waveform  string  `yaml:"waveform"`
}

type setFile struct {
	Sounds []Definition `yaml:"sounds"`
}

// DefaultSet returns the built-in game feedback tones. Frequencies are
// musical pitches (A5 for success, C5 for achievement, and so on).
func DefaultSet() []synth.ToneSpec {
	return []synth.ToneSpec{
		{Name: "click", Frequency: 1000, Duration: 0.05, Waveform: synth.Square},
		{Name: "success", Frequency: 880, Duration: 0.15, Waveform: synth.Sine},
		{Name: "error", Frequency: 220, Duration: 0.25, Waveform: synth.Sawtooth},
		{Name: "xp", Frequency: 1320, Duration: 0.08, Waveform: synth.Sine},
		{Name: "streak", Frequency: 990, Duration: 0.2, Waveform: synth.Triangle},
		{Name: "levelup", Frequency: 660, Duration: 0.4, Waveform: synth.Triangle},
		{Name: "complete", Frequency: 784, Duration: 0.35, Waveform: synth.Sine},
		{Name: "achievement", Frequency: 523.25, Duration: 0.3, Waveform: synth.Sine},
	}
}

// LoadSet reads tone specs from a YAML sound-set file. The whole file
// is validated before any spec is returned.
func LoadSet(path string) ([]synth.ToneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound set: %w", err)
	}

	var file setFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sound set: %w", err)
	}

	if len(file.Sounds) == 0 {
		return nil, fmt.Errorf("sound set %s defines no sounds", path)
	}

	specs := make([]synth.ToneSpec, 0, len(file.Sounds))
	seen := make(map[string]bool, len(file.Sounds))

	for i, def := range file.Sounds {
		if def.Name == "" {
			return nil, fmt.Errorf("sound set entry %d: %w", i, ErrUnnamedSound)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("sound set entry %d (%s): %w", i, def.Name, ErrSoundExists)
		}
		seen[def.Name] = true

		waveform, err := synth.ParseWaveform(def.Waveform)
		if err != nil {
			return nil, fmt.Errorf("sound set entry %d (%s): %w", i, def.Name, err)
		}

		spec := synth.ToneSpec{
			Name:      def.Name,
			Frequency: def.Frequency,
			Duration:  def.Duration,
			Waveform:  waveform,
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("sound set entry %d (%s): %w", i, def.Name, err)
		}

		specs = append(specs, spec)
	}

	return specs, nil
}
