package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shazoom/config"
)

func TestDefaultIsValidAtACommonSampleRate(t *testing.T) {
	cfg := config.Default()
	_, err := config.New(cfg, 44100)
	require.NoError(t, err)
}

func TestNewRejectsBucketsExceedingNyquist(t *testing.T) {
	cfg := config.Default()
	cfg.BucketSize = 10000
	cfg.BucketCount = 10

	_, err := config.New(cfg, 44100)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewRejectsNarrowTargetZoneWidth(t *testing.T) {
	cfg := config.Default()
	cfg.TargetZoneWidth = 1

	_, err := config.New(cfg, 44100)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewRejectsNarrowTargetZoneHeight(t *testing.T) {
	cfg := config.Default()
	cfg.TargetZoneHeight = 0

	_, err := config.New(cfg, 44100)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewRejectsZeroFreqPerSlice(t *testing.T) {
	cfg := config.Default()
	cfg.FreqPerSlice = 0

	_, err := config.New(cfg, 44100)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWindowSamplesScalesWithSampleRate(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 11466, cfg.WindowSamples(44100))
	assert.Equal(t, 2080, cfg.WindowSamples(8000))
}

func TestHashIsStableAndKnobSensitive(t *testing.T) {
	a := config.Default()
	b := config.Default()
	assert.Equal(t, a.Hash(), b.Hash())

	b.FuzzFactor = 3
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestGetEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("SHAZOOM_TEST_KEY_UNSET", "")
	assert.Equal(t, "fallback", config.GetEnv("SHAZOOM_TEST_KEY_UNSET", "fallback"))

	t.Setenv("SHAZOOM_TEST_KEY_SET", "actual")
	assert.Equal(t, "actual", config.GetEnv("SHAZOOM_TEST_KEY_SET", "fallback"))
}

func TestLoadEnvConfigReadsOverridesFromEnvironment(t *testing.T) {
	t.Setenv("SHAZOOM_CACHE_DIR", "/tmp/shazoom-cache")
	t.Setenv("SHAZOOM_CACHE_KIND", "postgres")
	t.Setenv("SHAZOOM_POSTGRES_DSN", "postgres://localhost/test")

	env := config.LoadEnvConfig()
	assert.Equal(t, "/tmp/shazoom-cache", env.CacheDir)
	assert.Equal(t, "postgres", env.CacheKind)
	assert.Equal(t, "postgres://localhost/test", env.PostgresDSN)
}
