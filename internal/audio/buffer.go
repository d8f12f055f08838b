package audio

import "math"

// Silence returns a buffer of zero-valued samples covering the given
// duration. Zero or negative durations still yield one frame so downstream
// concatenation never sees an empty buffer.
func Silence(seconds float64) []float32 {
	frames := int(math.Floor(SampleRate * seconds))
	if frames < 1 {
		frames = 1
	}

	return make([]float32, frames)
}

// Concatenate joins buffers into one contiguous buffer, preserving order,
// with no gaps or cross-fades. All inputs share the pipeline's fixed
// sample rate and channel count.
func Concatenate(buffers [][]float32) ([]float32, error) {
	if len(buffers) == 0 {
		return nil, ErrEmptyInput
	}

	total := 0
	for _, b := range buffers {
		total += len(b)
	}

	out := make([]float32, total)
	offset := 0
	for _, b := range buffers {
		copy(out[offset:], b)
		offset += len(b)
	}

	return out, nil
}
