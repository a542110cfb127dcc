package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("no API key configured")
	// ErrTranscriptionFailed is returned when the transcription request fails.
	ErrTranscriptionFailed = errors.New("transcription failed")
)

// WhisperConfig holds configuration for the Whisper provider.
type WhisperConfig struct {
	// APIKey authenticates against the transcription API.
	APIKey string
	// BaseURL overrides the API endpoint, for compatible self-hosted servers.
	BaseURL string
	// Model is the transcription model to request.
	Model string
}

// Whisper implements the Provider interface against the OpenAI audio API
// or any Whisper-compatible endpoint.
type Whisper struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewWhisper creates a new Whisper transcription provider.
func NewWhisper(cfg WhisperConfig, logger *slog.Logger) (*Whisper, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Whisper{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Name returns the provider identifier.
func (w *Whisper) Name() string {
	return "whisper"
}

// Transcribe converts audio to text using the Whisper API.
func (w *Whisper) Transcribe(ctx context.Context, req Request) (*Response, error) {
	if req.Audio == nil {
		return nil, errors.New("no audio data")
	}

	filename := req.Filename
	if filename == "" {
		filename = "audio.wav"
	}

	w.logger.Debug("requesting transcription",
		"model", w.model,
		"filename", filename,
		"language", req.Language,
	)

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   req.Audio,
		Language: req.Language,
		Prompt:   req.Prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		w.logger.Error("transcription request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	w.logger.Debug("transcription complete",
		"text_length", len(resp.Text),
		"language", resp.Language,
		"duration", resp.Duration,
	)

	return &Response{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}
