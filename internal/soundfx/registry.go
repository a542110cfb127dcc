// Package soundfx holds the registry of named game feedback sounds.
package soundfx

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/xpira/linguafx/internal/synth"
	"github.com/xpira/linguafx/internal/wav"
)

var (
	// ErrSoundNotFound is returned when a sound is not registered.
	ErrSoundNotFound = errors.New("sound not found")
	// ErrSoundExists is returned when registering a duplicate sound name.
	ErrSoundExists = errors.New("sound already registered")
	// ErrUnnamedSound is returned when registering a spec with an empty name.
	ErrUnnamedSound = errors.New("sound name is empty")
)

// Registry holds encoded sounds keyed by name. Each sound is synthesized
// and encoded exactly once, at registration; lookups return the cached
// encoding.
type Registry struct {
	mu         sync.RWMutex
	sounds     map[string]*wav.Audio
	sampleRate int
}

// NewRegistry creates an empty sound registry rendering at the given
// sample rate.
func NewRegistry(sampleRate int) *Registry {
	return &Registry{
		sounds:     make(map[string]*wav.Audio),
		sampleRate: sampleRate,
	}
}

// Add synthesizes and encodes a tone and stores it under its name.
// A failure leaves the registry unchanged and does not affect sounds
// already registered.
func (r *Registry) Add(spec synth.ToneSpec) error {
	if spec.Name == "" {
		return ErrUnnamedSound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sounds[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrSoundExists, spec.Name)
	}

	samples, err := synth.Synthesize(spec, r.sampleRate)
	if err != nil {
		return err
	}

	r.sounds[spec.Name] = wav.Encode(samples, r.sampleRate)
	return nil
}

// Get retrieves an encoded sound by name.
func (r *Registry) Get(name string) (*wav.Audio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	audio, exists := r.sounds[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSoundNotFound, name)
	}

	return audio, nil
}

// Names returns all registered sound names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sounds))
	for name := range r.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered sounds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sounds)
}

// SampleRate returns the rate sounds are rendered at.
func (r *Registry) SampleRate() int {
	return r.sampleRate
}

// Build assembles a registry from a list of tone specs. A spec that
// fails to register is logged and skipped; the remaining sounds are
// unaffected.
func Build(specs []synth.ToneSpec, sampleRate int, logger *slog.Logger) *Registry {
	registry := NewRegistry(sampleRate)

	for _, spec := range specs {
		if err := registry.Add(spec); err != nil {
			logger.Warn("skipping sound",
				"sound", spec.Name,
				"error", err,
			)
			continue
		}
		logger.Debug("sound registered",
			"sound", spec.Name,
			"frequency", spec.Frequency,
			"duration", spec.Duration,
			"waveform", spec.Waveform.String(),
		)
	}

	return registry
}
