// Package tts holds the synthesis and transcription collaborator contracts,
// the voice and emotion catalogs, and per-segment synthesis.
package tts

import (
	"context"
	"errors"
)

// Synthesizer is the remote speech synthesis contract. It returns raw
// signed 16-bit little-endian PCM bytes at 24 kHz mono.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, style string) ([]byte, error)
}

// Analysis is the result of transcribing a voice sample.
type Analysis struct {
	Transcription string `json:"transcription"`
	VocalStyle    string `json:"vocalStyle"`
}

// Analyzer transcribes a voice sample and describes its vocal style.
// Used to seed a voice-recreation generation.
type Analyzer interface {
	Analyze(ctx context.Context, audio []byte, mimeType string) (Analysis, error)
}

// ErrNoAudio is returned when the synthesis collaborator succeeds but
// produces no audio payload.
var ErrNoAudio = errors.New("synthesis returned no audio")
