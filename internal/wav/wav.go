// Package wav encodes sample buffers as RIFF/WAVE files.
package wav

import (
	"bytes"
	"io"
	"math"
)

// WAV format constants.
const (
	// HeaderSize is the size of a standard WAV file header in bytes.
	HeaderSize = 44

	// FormatPCM is the audio format code for uncompressed PCM.
	FormatPCM = 1
)

// Synthesized tone format constants.
const (
	// DefaultSampleRate is the sample rate used for game tones (44100 Hz).
	DefaultSampleRate = 44100

	// ToneChannels is the channel count for game tones (mono).
	ToneChannels = 1

	// ToneBitsPerSample is the bit depth for game tones (16-bit).
	ToneBitsPerSample = 16
)

// ContentTypeWAV is the MIME type of encoded audio.
const ContentTypeWAV = "audio/wav"

// Audio is an encoded WAV file together with its MIME type. It is
// immutable once created; playback sinks and HTTP handlers read it
// through Reader.
type Audio struct {
	// Data is the complete WAV file, header included.
	Data []byte
	// ContentType is the MIME type of Data.
	ContentType string
	// SampleRate is the audio sample rate in Hz.
	SampleRate int
}

// Reader returns a fresh reader over the encoded file.
func (a *Audio) Reader() io.Reader {
	return bytes.NewReader(a.Data)
}

// Encode converts normalized samples to a 16-bit mono WAV file. Each
// sample is clamped to [-1, 1] and quantized with round(sample * 32767),
// little-endian. Identical input always yields byte-identical output.
func Encode(samples []float64, sampleRate int) *Audio {
	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(math.Round(s * 32767))
		PutLE16(pcm[2*i:], uint16(v))
	}

	return &Audio{
		Data:        WrapRawPCM(pcm, sampleRate, ToneChannels, ToneBitsPerSample),
		ContentType: ContentTypeWAV,
		SampleRate:  sampleRate,
	}
}

// WrapRawPCM adds a WAV header to raw PCM data.
// Parameters:
//   - pcm: raw PCM audio data bytes
//   - sampleRate: samples per second (e.g., 22050, 44100, 48000)
//   - channels: number of audio channels (1=mono, 2=stereo)
//   - bitsPerSample: bit depth per sample (typically 16)
//
// Returns a complete WAV file as a byte slice.
func WrapRawPCM(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	dataSize := len(pcm)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	// WAV header is 44 bytes
	header := make([]byte, HeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	PutLE32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	PutLE32(header[16:20], 16) // subchunk size
	PutLE16(header[20:22], FormatPCM)
	PutLE16(header[22:24], uint16(channels))
	PutLE32(header[24:28], uint32(sampleRate))
	PutLE32(header[28:32], uint32(byteRate))
	PutLE16(header[32:34], uint16(blockAlign))
	PutLE16(header[34:36], uint16(bitsPerSample))

	// data subchunk
	copy(header[36:40], "data")
	PutLE32(header[40:44], uint32(dataSize))

	return append(header, pcm...)
}

// PutLE16 writes a uint16 value in little-endian format to a byte slice.
func PutLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// PutLE32 writes a uint32 value in little-endian format to a byte slice.
func PutLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// Silence creates a valid mono 16-bit WAV file containing numSamples of
// silence. This is useful for testing.
func Silence(numSamples, sampleRate int) []byte {
	pcm := make([]byte, numSamples*2)
	return WrapRawPCM(pcm, sampleRate, ToneChannels, ToneBitsPerSample)
}
