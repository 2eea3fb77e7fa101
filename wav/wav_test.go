package wav_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shazoom/wav"
)

func toneSamples(freq float64, sampleRate, n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	}
	return samples
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	sampleRate := 8000
	samples := toneSamples(440, sampleRate, 256)

	buf := wav.Encode(sampleRate, samples)
	decoded, err := wav.Decode(buf)
	require.NoError(t, err)

	assert.Equal(t, sampleRate, decoded.SampleRate)
	require.Len(t, decoded.Samples, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], decoded.Samples[i], 1e-3)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := wav.Decode(make([]byte, 10))
	require.ErrorIs(t, err, wav.ErrInvalidHeader)
}

func TestDecodeRejectsStereo(t *testing.T) {
	buf := wav.Encode(8000, toneSamples(200, 8000, 16))
	buf[22] = 2 // NumChannels = 2

	_, err := wav.Decode(buf)
	require.ErrorIs(t, err, wav.ErrInvalidHeader)
}

func TestDecodeRejectsTruncatedDataLength(t *testing.T) {
	buf := wav.Encode(8000, toneSamples(200, 8000, 16))
	// Claim more data than the buffer actually carries.
	buf[40] = 0xFF
	buf[41] = 0xFF

	_, err := wav.Decode(buf)
	require.ErrorIs(t, err, wav.ErrInvalidHeader)
}

func TestDecodeToleratesTrailingChunks(t *testing.T) {
	samples := toneSamples(300, 8000, 32)
	buf := wav.Encode(8000, samples)
	buf = append(buf, []byte("extra-trailing-chunk-data")...)

	decoded, err := wav.Decode(buf)
	require.NoError(t, err)
	assert.Len(t, decoded.Samples, len(samples))
}
