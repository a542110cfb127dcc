// Package player sends encoded sounds to an audio output.
package player

import (
	"math"

	"github.com/xpira/linguafx/internal/wav"
)

// Player is the playback collaborator sounds are handed to.
// Implementations start playback asynchronously: Play returns once the
// sound is dispatched, and overlapping sounds play independently.
type Player interface {
	// Play starts playback of an encoded sound.
	Play(audio *wav.Audio) error
	// SetVolume sets the level for future and in-flight playback.
	// Levels outside [0, 1] are clamped.
	SetVolume(level float64)
	// Volume returns the current playback level.
	Volume() float64
	// Close stops playback and releases the output.
	Close() error
}

func clampLevel(level float64) float64 {
	if level < 0 || math.IsNaN(level) {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
