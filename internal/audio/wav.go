package audio

import "encoding/binary"

// wavHeaderSize is the canonical PCM WAV header length: RIFF descriptor,
// 16-byte fmt subchunk, data subchunk header. No extension chunks.
const wavHeaderSize = 44

// EncodeWAV encodes float samples as a complete WAV file at the fixed
// 24 kHz mono 16-bit format. The header is written byte for byte in the
// canonical 44-byte layout so any player recognizes the file.
func EncodeWAV(samples []float32) []byte {
	pcm := EncodePCM16(samples)

	const byteRate = SampleRate * Channels * BitDepth / 8
	const blockAlign = Channels * BitDepth / 8

	out := make([]byte, wavHeaderSize+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], Channels)
	binary.LittleEndian.PutUint32(out[24:28], SampleRate)
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], BitDepth)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[wavHeaderSize:], pcm)

	return out
}
