package wav

import "encoding/binary"

// Encode writes samples (already normalized to [-1, 1]) as a mono PCM16
// little-endian RIFF/WAVE buffer, the inverse of Decode. It is grounded on
// the teacher's fileformat.WriteWavFile/writeWavHeader, trimmed to the
// mono PCM16 profile this package reads.
func Encode(sampleRate int, samples []float32) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		word := int16(s * 32767.0)
		binary.LittleEndian.PutUint16(data[i*2:i*2+2], uint16(word))
	}

	buf := make([]byte, headerSize+len(data))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(data)))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	byteRate := sampleRate * 2
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], 2)  // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16) // bits per sample
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(data)))
	copy(buf[headerSize:], data)

	return buf
}
