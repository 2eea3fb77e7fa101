// Package wav decodes the narrow PCM16 mono little-endian RIFF/WAVE
// profile the fingerprinting core requires. It is adapted from the
// teacher's fileformat.ReadWavInfo, trimmed to the single channel layout
// spec.md §4.1 describes: no other RIFF chunks are parsed, and stereo
// input is rejected rather than silently downmixed.
package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/mdobak/go-xerrors"
)

// ErrInvalidHeader is returned when the buffer is shorter than the header
// or its declared data length, or the channel count is not 1. The audio
// format and bits-per-sample fields are not checked.
var ErrInvalidHeader = fmt.Errorf("wav: invalid header")

// headerSize is the fixed byte offset at which PCM data begins for the
// profile this package accepts. Real RIFF files carry variable-length
// chunks before "data"; this package deliberately does not walk them,
// per spec.md §4.1.
const headerSize = 44

// Buffer is a decoded mono sample buffer, normalized to [-1, 1].
type Buffer struct {
	SampleRate int
	Samples    []float32
}

// Decode parses buf as a PCM16 mono little-endian RIFF/WAVE byte buffer.
// Bytes 22-23 carry the channel count (must be 1), bytes 24-25 the sample
// rate, and the PCM16 data payload begins at byte 44. Any bytes beyond
// the declared data length are ignored, and no other RIFF chunk is
// consulted.
func Decode(buf []byte) (Buffer, error) {
	if len(buf) < headerSize {
		return Buffer{}, xerrors.New(fmt.Errorf("%w: buffer shorter than %d-byte header (%d bytes)", ErrInvalidHeader, headerSize, len(buf)))
	}

	channels := binary.LittleEndian.Uint16(buf[22:24])
	if channels != 1 {
		return Buffer{}, xerrors.New(fmt.Errorf("%w: channel_count=%d, only mono is supported", ErrInvalidHeader, channels))
	}
	rate := int(binary.LittleEndian.Uint16(buf[24:26]))

	dataLen := int(binary.LittleEndian.Uint32(buf[40:44]))
	if dataLen < 0 || headerSize+dataLen > len(buf) {
		return Buffer{}, xerrors.New(fmt.Errorf("%w: declared data length %d exceeds buffer", ErrInvalidHeader, dataLen))
	}

	payload := buf[headerSize : headerSize+dataLen]
	if len(payload)%2 != 0 {
		payload = payload[:len(payload)-1]
	}

	samples := make([]float32, len(payload)/2)
	for i := range samples {
		word := int16(binary.LittleEndian.Uint16(payload[i*2 : i*2+2]))
		samples[i] = float32(word) / 32767.0
	}

	return Buffer{SampleRate: rate, Samples: samples}, nil
}
