package player

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/xpira/linguafx/internal/wav"
)

// ErrPlayerClosed is returned when playing through a closed player.
var ErrPlayerClosed = errors.New("player is closed")

// deviceBitDepth is the sample size in bytes (16-bit signed PCM).
const deviceBitDepth = 2

// DevicePlayer plays sounds through the local audio device. Each Play
// streams one sound through its own device player, so sounds overlap
// freely. In-flight players are tracked so volume changes reach sounds
// that are already playing.
type DevicePlayer struct {
	ctx        *oto.Context
	ready      chan struct{}
	sampleRate int
	logger     *slog.Logger

	mu     sync.Mutex
	volume float64
	active map[oto.Player]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewDevicePlayer opens the audio device at the given sample rate. The
// device becomes usable shortly after; sounds played before then are
// dropped rather than queued.
func NewDevicePlayer(sampleRate int, volume float64, logger *slog.Logger) (*DevicePlayer, error) {
	ctx, ready, err := oto.NewContext(sampleRate, wav.ToneChannels, deviceBitDepth)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	return &DevicePlayer{
		ctx:        ctx,
		ready:      ready,
		sampleRate: sampleRate,
		logger:     logger,
		volume:     clampLevel(volume),
		active:     make(map[oto.Player]struct{}),
	}, nil
}

// Play starts asynchronous playback of the sound.
func (p *DevicePlayer) Play(audio *wav.Audio) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPlayerClosed
	}
	p.mu.Unlock()

	select {
	case <-p.ready:
	default:
		p.logger.Debug("audio device not ready, dropping sound")
		return nil
	}

	if audio.SampleRate != p.sampleRate {
		p.logger.Warn("sample rate mismatch, sound will play pitch-shifted",
			"sound_rate", audio.SampleRate,
			"device_rate", p.sampleRate,
		)
	}

	// The device consumes raw PCM, so skip the WAV header.
	data := audio.Data
	if len(data) > wav.HeaderSize {
		data = data[wav.HeaderSize:]
	}

	op := p.ctx.NewPlayer(bytes.NewReader(data))

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		op.Close()
		return ErrPlayerClosed
	}
	p.active[op] = struct{}{}
	level := p.volume
	p.mu.Unlock()

	op.SetVolume(level)
	op.Play()

	p.wg.Add(1)
	go p.reap(op)

	return nil
}

// reap waits for a sound to finish, then closes and forgets its player.
func (p *DevicePlayer) reap(op oto.Player) {
	defer p.wg.Done()

	for op.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	if _, ok := p.active[op]; ok {
		delete(p.active, op)
		if err := op.Close(); err != nil {
			p.logger.Debug("closing device player", "error", err)
		}
	}
	p.mu.Unlock()
}

// SetVolume sets the level for future and in-flight playback.
func (p *DevicePlayer) SetVolume(level float64) {
	level = clampLevel(level)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = level
	for op := range p.active {
		op.SetVolume(level)
	}
}

// Volume returns the current playback level.
func (p *DevicePlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

// Close stops all in-flight sounds and waits for their reapers to exit.
func (p *DevicePlayer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for op := range p.active {
		delete(p.active, op)
		if err := op.Close(); err != nil {
			p.logger.Debug("closing device player", "error", err)
		}
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}
