package constellation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shazoom/config"
	"shazoom/constellation"
	"shazoom/spectrum"
	"shazoom/wav"
)

func toneBuffer(sampleRate, n int, freqs ...float64) wav.Buffer {
	samples := make([]float32, n)
	for i := range samples {
		var v float64
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * float64(i) / float64(sampleRate))
		}
		samples[i] = float32(v)
	}
	return wav.Buffer{SampleRate: sampleRate, Samples: samples}
}

func TestBuildPeakBudget(t *testing.T) {
	cfg := config.Default()
	sampleRate := 44100
	buf := toneBuffer(sampleRate, cfg.WindowSamples(sampleRate)*3, 500)

	frames := spectrum.Frames(buf, cfg)
	cmap := constellation.Build(frames, cfg)

	require.Len(t, cmap, 3)
	for _, peaks := range cmap {
		assert.LessOrEqual(t, len(peaks), cfg.FreqPerSlice)
		assert.LessOrEqual(t, len(peaks), cfg.BucketCount)
		for _, bin := range peaks {
			assert.Less(t, bin, cfg.BucketSize*cfg.BucketCount)
			assert.GreaterOrEqual(t, bin, 0)
		}
	}
}

func TestBuildSingleToneStaysInItsBucket(t *testing.T) {
	cfg := config.Default()
	sampleRate := 44100
	buf := toneBuffer(sampleRate, cfg.WindowSamples(sampleRate)*2, 500)

	frames := spectrum.Frames(buf, cfg)
	cmap := constellation.Build(frames, cfg)

	bucket := 500 / cfg.BucketSize
	lo, hi := bucket*cfg.BucketSize, (bucket+1)*cfg.BucketSize

	for _, peaks := range cmap {
		require.NotEmpty(t, peaks)
		assert.GreaterOrEqual(t, peaks[0], lo)
		assert.Less(t, peaks[0], hi)
	}
}

func TestBuildTwoTonesRankTopTwo(t *testing.T) {
	cfg := config.Default()
	sampleRate := 44100
	buf := toneBuffer(sampleRate, cfg.WindowSamples(sampleRate)*2, 500, 2000)

	frames := spectrum.Frames(buf, cfg)
	cmap := constellation.Build(frames, cfg)

	bucket500 := 500 / cfg.BucketSize
	bucket2000 := 2000 / cfg.BucketSize

	for _, peaks := range cmap {
		require.GreaterOrEqual(t, len(peaks), 2)
		top2 := map[int]bool{peaks[0] / cfg.BucketSize: true, peaks[1] / cfg.BucketSize: true}
		assert.True(t, top2[bucket500])
		assert.True(t, top2[bucket2000])
	}
}

func TestBuildNonIncreasingAmplitudeOrder(t *testing.T) {
	cfg := config.Default()
	frames := [][]float64{
		{1, 9, 2, 8, 3, 7, 4, 6, 5, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	cfgSmall := cfg
	cfgSmall.BucketSize = 1
	cfgSmall.BucketCount = 20
	cfgSmall.FreqPerSlice = 20

	cmap := constellation.Build(frames, cfgSmall)
	require.Len(t, cmap, 1)

	peaks := cmap[0]
	for i := 1; i < len(peaks); i++ {
		assert.GreaterOrEqual(t, frames[0][peaks[i-1]], frames[0][peaks[i]])
	}
}
