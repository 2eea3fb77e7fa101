package catalog_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shazoom/cache"
	"shazoom/catalog"
	"shazoom/config"
	"shazoom/logging"
	"shazoom/wav"
)

func toneWav(sampleRate, n int, freq float64) []byte {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	}
	return wav.Encode(sampleRate, samples)
}

func TestBuilderIngestsRegisteredSongs(t *testing.T) {
	cfg := config.Default()
	sampleRate := 8000
	w := cfg.WindowSamples(sampleRate)

	b := catalog.NewBuilder(cfg, cache.NullCache{}, logging.Default())
	b.AddSong(catalog.InMemorySource{Name: "alpha", Data: toneWav(sampleRate, w*4, 500)}).
		AddSong(catalog.InMemorySource{Name: "beta", Data: toneWav(sampleRate, w*4, 1200)})

	idx, songs, ingestErrs, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ingestErrs)
	require.Len(t, songs, 2)
	assert.Equal(t, "alpha", songs[0].Label)
	assert.Equal(t, "beta", songs[1].Label)
	assert.NotEmpty(t, idx)
}

func TestBuilderReusesCachedFingerprints(t *testing.T) {
	cfg := config.Default()
	sampleRate := 8000
	w := cfg.WindowSamples(sampleRate)
	dir := t.TempDir()
	fc := cache.NewFileCache(dir)

	data := toneWav(sampleRate, w*4, 700)

	first := catalog.NewBuilder(cfg, fc, logging.Default())
	first.AddSong(catalog.InMemorySource{Name: "gamma", Data: data})
	idx1, _, ingestErrs, err := first.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ingestErrs)

	second := catalog.NewBuilder(cfg, fc, logging.Default())
	second.AddSong(catalog.InMemorySource{Name: "gamma", Data: data})
	idx2, _, ingestErrs, err := second.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ingestErrs)

	assert.Equal(t, len(idx1), len(idx2))
}

func TestBuilderReportsBadSourceWithoutFailingBatch(t *testing.T) {
	cfg := config.Default()
	sampleRate := 8000
	w := cfg.WindowSamples(sampleRate)

	b := catalog.NewBuilder(cfg, cache.NullCache{}, logging.Default())
	b.AddSong(catalog.InMemorySource{Name: "broken", Data: []byte("not a wav file")}).
		AddSong(catalog.InMemorySource{Name: "fine", Data: toneWav(sampleRate, w*4, 500)})

	idx, songs, ingestErrs, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, ingestErrs, 1)
	require.Len(t, songs, 2)
	assert.NotEmpty(t, idx)
}

func TestFileSourceLabelStripsExtension(t *testing.T) {
	src := catalog.FileSource{Path: "/music/some song.wav"}
	assert.Equal(t, "some song", src.Label())
}
