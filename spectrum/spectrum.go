package spectrum

import (
	"math/cmplx"

	"shazoom/config"
	"shazoom/wav"
)

// Frames slices buf into disjoint, non-overlapping windows of exactly W =
// sample_rate*ms_timeslice_size/1000 samples, in order, discarding a
// trailing remainder shorter than W. Each window is copied into a
// fixed-size buffer of length sample_rate (zero-padded), so the frequency
// resolution of the resulting spectrum is exactly 1 bin per Hz regardless
// of the slice duration — spec.md §4.2's rationale for why bucket_size can
// be stated directly in Hz downstream.
//
// The result is indexed by slice t; Frames[t] holds the magnitude spectrum
// of slice t, truncated to the first sampleRate/2 bins (the non-redundant
// half for a real-valued input).
func Frames(buf wav.Buffer, cfg config.Config) [][]float64 {
	w := cfg.WindowSamples(buf.SampleRate)
	if w <= 0 {
		return nil
	}
	t := len(buf.Samples) / w

	frames := make([][]float64, 0, t)
	padded := make([]float64, buf.SampleRate)
	for i := 0; i < t; i++ {
		for j := range padded {
			padded[j] = 0
		}
		start := i * w
		for j := 0; j < w; j++ {
			padded[j] = float64(buf.Samples[start+j])
		}

		spectrum := FFT(padded)
		half := len(spectrum) / 2
		magnitude := make([]float64, half)
		for j := 0; j < half; j++ {
			magnitude[j] = cmplx.Abs(spectrum[j])
		}
		frames = append(frames, magnitude)
	}

	return frames
}
