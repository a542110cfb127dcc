package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP settings
	HTTPPort    int
	BearerToken string

	// Audio settings
	SampleRate   int
	SoundSetPath string
	AudioDevice  bool
	MasterVolume float64

	// Transcription settings
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	WhisperModel   string
	MaxUploadBytes int64

	// Logging settings
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		// HTTP settings
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		BearerToken: os.Getenv("BEARER_TOKEN"),

		// Audio settings
		SampleRate:   getEnvInt("SAMPLE_RATE", 44100),
		SoundSetPath: getEnvString("SOUND_SET", ""),
		AudioDevice:  getEnvBool("AUDIO_DEVICE", true),
		MasterVolume: getEnvFloat("MASTER_VOLUME", 1.0),

		// Transcription settings (optional)
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getEnvString("OPENAI_BASE_URL", ""),
		WhisperModel:   getEnvString("WHISPER_MODEL", "whisper-1"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 25<<20),

		// Logging settings
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthDisabled returns true if bearer token authentication is disabled.
func (c *Config) AuthDisabled() bool {
	return c.BearerToken == ""
}

// TranscribeEnabled returns true if a transcription API key is configured.
func (c *Config) TranscribeEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return errors.New("HTTP_PORT must be between 1 and 65535")
	}

	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return errors.New("SAMPLE_RATE must be between 8000 and 192000")
	}

	// also rejects NaN
	if !(c.MasterVolume >= 0 && c.MasterVolume <= 1) {
		return errors.New("MASTER_VOLUME must be between 0 and 1")
	}

	if c.MaxUploadBytes < 1 {
		return errors.New("MAX_UPLOAD_BYTES must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return errors.New("LOG_FORMAT must be one of: text, json")
	}

	return nil
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns the environment variable as an int64 or a default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as a float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as a bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
