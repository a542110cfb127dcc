// Package playback binds the sound registry to a playback output.
package playback

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xpira/linguafx/internal/metrics"
	"github.com/xpira/linguafx/internal/player"
	"github.com/xpira/linguafx/internal/soundfx"
)

// ErrInvalidVolume is returned when a volume level is outside [0, 1].
var ErrInvalidVolume = errors.New("volume level out of range")

// Handler serves the play and volume surfaces over an injected registry
// and player.
type Handler struct {
	registry *soundfx.Registry
	player   player.Player
	logger   *slog.Logger
}

// NewHandler creates a new playback handler.
func NewHandler(registry *soundfx.Registry, p player.Player, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		player:   p,
		logger:   logger,
	}
}

// Play hands the named sound to the player, fire-and-forget. An unknown
// name is skipped silently: no error, no side effect beyond a debug log.
// Concurrent plays are independent; overlapping sounds are expected.
func (h *Handler) Play(name string) {
	audio, err := h.registry.Get(name)
	if err != nil {
		metrics.PlayMissesTotal.Inc()
		h.logger.Debug("ignoring unknown sound", "sound", name)
		return
	}

	if err := h.player.Play(audio); err != nil {
		metrics.PlaybackErrorsTotal.Inc()
		h.logger.Error("playback failed", "sound", name, "error", err)
		return
	}

	metrics.SoundsPlayedTotal.WithLabelValues(name).Inc()
	h.logger.Debug("sound dispatched", "sound", name, "bytes", len(audio.Data))
}

// SetVolume applies a level in [0, 1] to the player. The level affects
// future and in-flight playback; cached sound bytes are never touched.
func (h *Handler) SetVolume(level float64) error {
	if !(level >= 0 && level <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, level)
	}

	h.player.SetVolume(level)
	metrics.MasterVolume.Set(level)
	h.logger.Info("volume changed", "level", level)
	return nil
}

// Volume returns the player's current level.
func (h *Handler) Volume() float64 {
	return h.player.Volume()
}
