package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Fixed audio format for the entire pipeline. Every buffer that is decoded,
// concatenated, or encoded uses this rate and channel count.
const (
	SampleRate = 24000
	Channels   = 1
	BitDepth   = 16
)

// ErrMalformedAudio is returned when a PCM byte stream violates the
// 16-bit little-endian layout invariant.
var ErrMalformedAudio = errors.New("malformed audio data")

// ErrEmptyInput is returned when Concatenate is given zero buffers.
var ErrEmptyInput = errors.New("no audio buffers to concatenate")

// DecodePCM16 reinterprets data as signed 16-bit little-endian samples and
// returns them normalized to [-1, 1).
func DecodePCM16(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of 16-bit samples", ErrMalformedAudio, len(data))
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(v) / 32768.0
	}

	return samples, nil
}

// EncodePCM16 quantizes float samples to signed 16-bit little-endian bytes.
// Samples are clamped to [-1, 1]; positive values scale by 32767 and
// negative values by 32768 so that both ends of the range are reachable.
func EncodePCM16(samples []float32) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		clamped := math.Max(-1.0, math.Min(1.0, float64(s)))

		var v int16
		if clamped < 0 {
			v = int16(math.Round(clamped * 32768))
		} else {
			v = int16(math.Round(clamped * 32767))
		}

		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}

	return buf
}

// Duration returns the playback length of a sample buffer in seconds.
func Duration(samples []float32) float64 {
	return float64(len(samples)) / SampleRate
}
