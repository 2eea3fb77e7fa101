// Package config holds the single immutable parameter record that every
// stage of the fingerprinting pipeline is built from. There is no
// process-wide global: callers construct a Config once and pass it down
// explicitly, the same way the teacher's FingerprintConfig is threaded
// through Spectrogram/ExtractPeaks/Fingerprint instead of read from a
// package-level var.
package config

import (
	"fmt"

	"github.com/mdobak/go-xerrors"
)

// ErrInvalidConfig is returned by New when a precondition from spec.md §6
// is violated. Configuration errors are fatal at construction time.
var ErrInvalidConfig = fmt.Errorf("shazoom: invalid config")

// Config is the knob set from spec.md §6. Zero value is not valid; always
// go through New or Default.
type Config struct {
	// SliceMillis is the window duration in ms (ms_timeslice_size).
	SliceMillis int
	// FreqPerSlice is K, the number of peaks kept per slice.
	FreqPerSlice int
	// BucketSize is Hz per bucket (size_bucket).
	BucketSize int
	// BucketCount is the number of buckets (count_bucket).
	BucketCount int
	// TargetZoneWidth is the Δt upper bound in slices (width_target_zone).
	TargetZoneWidth int
	// TargetZoneHeight is the full height, in Hz, of the frequency band
	// around the anchor (target_zone_height).
	TargetZoneHeight int
	// FuzzFactor is the bitmask cleared from both frequencies of a
	// fingerprint (fuzz_factor). May be 0, in which case fuzzing is a
	// no-op, but it is still always applied.
	FuzzFactor uint32
}

// Default returns the knobs from spec.md §6, centered on the most recent
// variant.
func Default() Config {
	return Config{
		SliceMillis:      260,
		FreqPerSlice:     8,
		BucketSize:       180,
		BucketCount:      20,
		TargetZoneWidth:  10,
		TargetZoneHeight: 900,
		FuzzFactor:       1,
	}
}

// New validates cfg against a sample rate and returns it, or
// ErrInvalidConfig describing which precondition failed.
func New(cfg Config, sampleRate int) (Config, error) {
	if cfg.BucketSize*cfg.BucketCount > sampleRate/2 {
		return Config{}, xerrors.New(fmt.Errorf(
			"%w: size_bucket(%d)*count_bucket(%d)=%d exceeds sample_rate/2=%d",
			ErrInvalidConfig, cfg.BucketSize, cfg.BucketCount,
			cfg.BucketSize*cfg.BucketCount, sampleRate/2))
	}
	if cfg.TargetZoneWidth < 2 {
		return Config{}, xerrors.New(fmt.Errorf(
			"%w: width_target_zone(%d) must be >= 2", ErrInvalidConfig, cfg.TargetZoneWidth))
	}
	if cfg.TargetZoneHeight < 2 {
		return Config{}, xerrors.New(fmt.Errorf(
			"%w: target_zone_height(%d) must be >= 2", ErrInvalidConfig, cfg.TargetZoneHeight))
	}
	if cfg.FreqPerSlice < 1 {
		return Config{}, xerrors.New(fmt.Errorf(
			"%w: freq_per_slice(%d) must be >= 1", ErrInvalidConfig, cfg.FreqPerSlice))
	}
	return cfg, nil
}

// WindowSamples returns W, the number of samples in one slice at sampleRate.
func (c Config) WindowSamples(sampleRate int) int {
	return sampleRate * c.SliceMillis / 1000
}

// Hash returns a stable fingerprint of the knobs, used by the cache
// collaborator to key per-song vectors on (config_hash, song_label_hash)
// per spec.md §6.
func (c Config) Hash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	mix := func(v uint64) {
		h ^= v
		h *= 1099511628211
	}
	mix(uint64(c.SliceMillis))
	mix(uint64(c.FreqPerSlice))
	mix(uint64(c.BucketSize))
	mix(uint64(c.BucketCount))
	mix(uint64(c.TargetZoneWidth))
	mix(uint64(c.TargetZoneHeight))
	mix(uint64(c.FuzzFactor))
	return h
}
