package audio

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/wav"
)

// DecodeWAV decodes a WAV blob into float32 samples, enforcing the
// pipeline's fixed format. Violations of the container layout and of the
// fixed format both report ErrMalformedAudio; callers treat an off-format
// upload the same as a corrupt one.
func DecodeWAV(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty WAV input", ErrMalformedAudio)
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrMalformedAudio)
	}

	if dec.SampleRate != SampleRate || dec.NumChans != Channels || dec.BitDepth != BitDepth {
		return nil, fmt.Errorf("%w: %d Hz, %d channel(s), %d-bit; want %d Hz mono %d-bit",
			ErrMalformedAudio, dec.SampleRate, dec.NumChans, dec.BitDepth, SampleRate, BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read PCM data: %w", err)
	}

	return buf.Data, nil
}

// WAVDuration reports the playback length in seconds of a WAV blob in the
// pipeline format. Used to validate uploaded voice samples before analysis.
func WAVDuration(data []byte) (float64, error) {
	samples, err := DecodeWAV(data)
	if err != nil {
		return 0, err
	}

	return Duration(samples), nil
}
