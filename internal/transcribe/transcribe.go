package transcribe

import (
	"context"
	"io"
)

// Request contains parameters for a transcription.
type Request struct {
	// Audio is the audio content to transcribe.
	Audio io.Reader
	// Filename is the original file name, used to hint the audio format.
	Filename string
	// Language is an optional ISO-639-1 language hint (e.g. "es").
	Language string
	// Prompt optionally biases the model toward expected vocabulary.
	Prompt string
}

// Response represents a completed transcription.
type Response struct {
	// Text is the transcribed text.
	Text string
	// Language is the language detected by the model.
	Language string
	// Duration is the length of the audio in seconds.
	Duration float64
}

// Provider is the interface for speech-to-text transcription.
type Provider interface {
	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, req Request) (*Response, error)
	// Name returns the provider identifier.
	Name() string
}
