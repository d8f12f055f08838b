package audio

import (
	"errors"
	"math"
	"testing"
)

func TestDecodePCM16(t *testing.T) {
	t.Run("decodes little-endian samples", func(t *testing.T) {
		// 0x0000 = 0, 0x4000 = 16384, 0x8000 = -32768
		data := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x80}
		samples, err := DecodePCM16(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []float32{0, 0.5, -1.0}
		if len(samples) != len(want) {
			t.Fatalf("got %d samples, want %d", len(samples), len(want))
		}
		for i := range want {
			if samples[i] != want[i] {
				t.Errorf("sample %d: got %v, want %v", i, samples[i], want[i])
			}
		}
	})

	t.Run("rejects odd byte count", func(t *testing.T) {
		_, err := DecodePCM16([]byte{0x00, 0x01, 0x02})
		if err == nil {
			t.Fatal("expected error for odd byte count")
		}
		if !errors.Is(err, ErrMalformedAudio) {
			t.Errorf("expected ErrMalformedAudio, got %v", err)
		}
	})

	t.Run("empty input yields empty buffer", func(t *testing.T) {
		samples, err := DecodePCM16(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != 0 {
			t.Errorf("got %d samples, want 0", len(samples))
		}
	})
}

func TestEncodePCM16(t *testing.T) {
	t.Run("asymmetric quantization reaches both range ends", func(t *testing.T) {
		data := EncodePCM16([]float32{1.0, -1.0})
		if got := int16(uint16(data[0]) | uint16(data[1])<<8); got != 32767 {
			t.Errorf("positive full scale: got %d, want 32767", got)
		}
		if got := int16(uint16(data[2]) | uint16(data[3])<<8); got != -32768 {
			t.Errorf("negative full scale: got %d, want -32768", got)
		}
	})

	t.Run("clamps out-of-range input", func(t *testing.T) {
		data := EncodePCM16([]float32{2.0, -2.0})
		if got := int16(uint16(data[0]) | uint16(data[1])<<8); got != 32767 {
			t.Errorf("clamped positive: got %d, want 32767", got)
		}
		if got := int16(uint16(data[2]) | uint16(data[3])<<8); got != -32768 {
			t.Errorf("clamped negative: got %d, want -32768", got)
		}
	})

	t.Run("round trip within one quantization step", func(t *testing.T) {
		in := []float32{0, 0.25, -0.25, 0.5, -0.5, 0.999, -0.999, 1.0, -1.0}
		decoded, err := DecodePCM16(EncodePCM16(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Positive samples scale by 32767 on encode and 32768 on
		// decode, so the worst case is the scale mismatch plus half a
		// rounding step.
		const tolerance = 1.5 / 32768
		for i, s := range in {
			if diff := math.Abs(float64(decoded[i] - s)); diff > tolerance {
				t.Errorf("sample %d: round trip drifted by %v (> %v)", i, diff, tolerance)
			}
		}
	})
}
