package player

import (
	"log/slog"
	"sync"

	"github.com/xpira/linguafx/internal/wav"
)

// NopPlayer discards sounds. It stands in for the device player when no
// audio output is available, keeping the rest of the service working.
type NopPlayer struct {
	logger *slog.Logger

	mu     sync.Mutex
	volume float64
}

// NewNopPlayer creates a player that logs and discards every sound.
func NewNopPlayer(logger *slog.Logger) *NopPlayer {
	return &NopPlayer{
		logger: logger,
		volume: 1,
	}
}

// Play logs the would-be playback and discards the sound.
func (p *NopPlayer) Play(audio *wav.Audio) error {
	p.logger.Debug("discarding sound (no audio output)",
		"bytes", len(audio.Data),
		"sample_rate", audio.SampleRate,
	)
	return nil
}

// SetVolume stores the level. Levels outside [0, 1] are clamped.
func (p *NopPlayer) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = clampLevel(level)
}

// Volume returns the stored level.
func (p *NopPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

// Close is a no-op.
func (p *NopPlayer) Close() error {
	return nil
}
