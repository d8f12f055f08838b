package live

import (
	"math"
	"sync"

	"github.com/example/voice-studio/internal/audio"
)

// TimelineBuffer is an Output that renders scheduled chunks onto a single
// sample timeline. Unscheduled stretches stay silent, so clock gaps between
// chunks become silence in the rendered audio.
type TimelineBuffer struct {
	mu      sync.Mutex
	samples []float32
}

// NewTimelineBuffer returns an empty timeline.
func NewTimelineBuffer() *TimelineBuffer {
	return &TimelineBuffer{}
}

// ScheduleAt places samples at the frame offset corresponding to start
// seconds, growing the timeline as needed.
func (b *TimelineBuffer) ScheduleAt(samples []float32, start float64) {
	if start < 0 {
		start = 0
	}
	offset := int(math.Round(start * audio.SampleRate))

	b.mu.Lock()
	defer b.mu.Unlock()

	if need := offset + len(samples); need > len(b.samples) {
		grown := make([]float32, need)
		copy(grown, b.samples)
		b.samples = grown
	}
	copy(b.samples[offset:], samples)
}

// Samples returns a copy of the rendered timeline.
func (b *TimelineBuffer) Samples() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]float32(nil), b.samples...)
}
