package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xpira/linguafx/internal/api"
	"github.com/xpira/linguafx/internal/config"
	"github.com/xpira/linguafx/internal/logging"
	"github.com/xpira/linguafx/internal/metrics"
	"github.com/xpira/linguafx/internal/playback"
	"github.com/xpira/linguafx/internal/player"
	"github.com/xpira/linguafx/internal/soundfx"
	"github.com/xpira/linguafx/internal/transcribe"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		// Use stderr before logger is initialized
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize structured logger
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting linguafx", "version", "0.1.0")

	// Warn if bearer token auth is disabled
	if cfg.AuthDisabled() {
		logger.Warn("HTTP bearer authentication is disabled (BEARER_TOKEN is empty)")
	}

	// Log loaded configuration (without sensitive values)
	logger.Info("configuration loaded",
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"http_port", cfg.HTTPPort,
		"sample_rate", cfg.SampleRate,
		"sound_set", cfg.SoundSetPath,
		"audio_device", cfg.AudioDevice,
		"master_volume", cfg.MasterVolume,
		"transcribe_enabled", cfg.TranscribeEnabled(),
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig.String())
		cancel()
	}()

	// Load the sound set and synthesize every tone up front
	specs := soundfx.DefaultSet()
	if cfg.SoundSetPath != "" {
		specs, err = soundfx.LoadSet(cfg.SoundSetPath)
		if err != nil {
			logger.Error("failed to load sound set", "error", err, "path", cfg.SoundSetPath)
			os.Exit(1)
		}
		logger.Info("sound set loaded", "path", cfg.SoundSetPath, "sounds", len(specs))
	}

	registry := soundfx.Build(specs, cfg.SampleRate, logger)
	metrics.RegistrySounds.Set(float64(registry.Len()))

	// Open the audio device, falling back to a no-op player
	var out player.Player
	if cfg.AudioDevice {
		device, err := player.NewDevicePlayer(cfg.SampleRate, cfg.MasterVolume, logger)
		if err != nil {
			logger.Warn("audio device unavailable, playback disabled", "error", err)
			out = player.NewNopPlayer(logger)
		} else {
			out = device
			logger.Info("audio device ready", "sample_rate", cfg.SampleRate)
		}
	} else {
		logger.Info("audio device disabled by configuration")
		out = player.NewNopPlayer(logger)
	}
	defer out.Close()

	out.SetVolume(cfg.MasterVolume)
	metrics.MasterVolume.Set(out.Volume())

	sounds := playback.NewHandler(registry, out, logger)

	// Initialize the transcription provider when an API key is configured
	var transcriber transcribe.Provider
	if cfg.TranscribeEnabled() {
		whisper, err := transcribe.NewWhisper(transcribe.WhisperConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.WhisperModel,
		}, logger)
		if err != nil {
			logger.Warn("failed to initialize transcription provider", "error", err)
		} else {
			transcriber = whisper
			logger.Info("transcription provider ready", "provider", whisper.Name(), "model", cfg.WhisperModel)
		}
	} else {
		logger.Warn("no OpenAI API key configured, transcription will not work")
	}

	// Create and start HTTP server
	server := api.New(cfg, logger, registry, sounds, transcriber)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
}
