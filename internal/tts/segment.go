package tts

import (
	"context"
	"fmt"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/script"
)

// SegmentSynthesizer turns parsed script segments into sample buffers.
// Pauses become silence locally; speech goes through the synthesis
// collaborator and the PCM decoder. Failures are not retried here: retry
// policy, if any, belongs to the caller.
type SegmentSynthesizer struct {
	synth Synthesizer
}

// NewSegmentSynthesizer wraps a synthesis collaborator.
func NewSegmentSynthesizer(synth Synthesizer) *SegmentSynthesizer {
	return &SegmentSynthesizer{synth: synth}
}

// Synthesize produces the sample buffer for one segment. voiceID must
// already be resolved to the collaborator's identifier; baseStyle is the
// resolved emotional style, which segment modifiers prefix.
func (s *SegmentSynthesizer) Synthesize(ctx context.Context, seg script.Segment, voiceID, baseStyle string) ([]float32, error) {
	if seg.IsPause {
		return audio.Silence(seg.Pause), nil
	}

	style := ComposeStyle(seg.Modifiers, baseStyle)

	pcm, err := s.synth.Synthesize(ctx, seg.Text, voiceID, style)
	if err != nil {
		return nil, fmt.Errorf("synthesize segment: %w", err)
	}
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}

	samples, err := audio.DecodePCM16(pcm)
	if err != nil {
		return nil, fmt.Errorf("decode segment audio: %w", err)
	}

	return samples, nil
}
