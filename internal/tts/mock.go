package tts

import (
	"context"
	"sync"

	"github.com/example/voice-studio/internal/audio"
)

// MockCall records one synthesis request made against a Mock.
type MockCall struct {
	Text    string
	VoiceID string
	Style   string
}

// Mock is a scripted Synthesizer for tests and offline runs. It returns
// SamplesPerCall zero samples per request (as PCM bytes) unless Fn is set.
type Mock struct {
	SamplesPerCall int
	Fn             func(text, voiceID, style string) ([]byte, error)

	mu    sync.Mutex
	calls []MockCall
}

// NewMock returns a mock producing samplesPerCall frames per request.
func NewMock(samplesPerCall int) *Mock {
	return &Mock{SamplesPerCall: samplesPerCall}
}

func (m *Mock) Synthesize(ctx context.Context, text, voiceID, style string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, VoiceID: voiceID, Style: style})
	m.mu.Unlock()

	if m.Fn != nil {
		return m.Fn(text, voiceID, style)
	}

	return audio.EncodePCM16(make([]float32, m.SamplesPerCall)), nil
}

// Calls returns a copy of the recorded requests in arrival order.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]MockCall(nil), m.calls...)
}
