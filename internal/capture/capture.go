// Package capture records a live microphone query through PortAudio and
// hands back a wav.Buffer ready for the C1-C5 pipeline. It exists
// because spec.md's pipeline explicitly does no resampling of its own:
// a microphone capture arrives at whatever rate the input device
// reports, so anti-alias filtering and downsampling have to happen
// somewhere outside the pipeline proper. This package is that somewhere,
// adapting core.LowPassFilter and core.Downsample from the teacher's
// spectrogram stage (which historically ran them inline, before every
// frame) to run exactly once, up front, against a raw capture.
//
// The stream setup itself is adapted from the teacher's now-removed
// main/recording.go: same portaudio.HighLatencyParameters, same
// mono/2048-frame configuration, same DefaultInputDevice negotiation,
// with its emoji progress prints replaced by structured logging.
package capture

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"

	"shazoom/logging"
	"shazoom/wav"
)

const (
	lowPassCutoffHz = 5000.0
	downsampleRatio = 4
	minSampleRateHz = 44100
)

// Options configures a live capture.
type Options struct {
	// Duration is how long to record. Zero defaults to 5 seconds.
	Duration time.Duration
	// SampleRateHint requests a specific input sample rate; zero lets
	// the device pick (clamped up to minSampleRateHz if it picks low).
	SampleRateHint float64
}

// Listen opens the default input device, records for opts.Duration (or
// until ctx is canceled, whichever comes first), and returns the
// anti-alias-filtered, downsampled result as a mono wav.Buffer.
func Listen(ctx context.Context, logger logging.Logger, opts Options) (wav.Buffer, error) {
	if opts.Duration <= 0 {
		opts.Duration = 5 * time.Second
	}

	if err := portaudio.Initialize(); err != nil {
		return wav.Buffer{}, fmt.Errorf("shazoom: portaudio init: %w", err)
	}
	defer func() {
		if err := portaudio.Terminate(); err != nil {
			logging.Error(ctx, logger, "portaudio terminate failed", err)
		}
	}()

	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return wav.Buffer{}, fmt.Errorf("shazoom: no default input device: %w", err)
	}

	sampleRate := device.DefaultSampleRate
	if opts.SampleRateHint > 0 {
		sampleRate = opts.SampleRateHint
	} else if sampleRate < minSampleRateHz {
		sampleRate = minSampleRateHz
	}

	params := portaudio.HighLatencyParameters(device, nil)
	params.Input.Channels = 1
	params.SampleRate = sampleRate
	params.FramesPerBuffer = 2048

	buffer := make([]int16, 2048)
	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		return wav.Buffer{}, fmt.Errorf("shazoom: opening capture stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return wav.Buffer{}, fmt.Errorf("shazoom: starting capture stream: %w", err)
	}

	logger.InfoContext(ctx, "capture started", "device", device.Name, "sample_rate", sampleRate)

	var raw []int16
	deadline := time.Now().Add(opts.Duration)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			stream.Stop()
			return wav.Buffer{}, ctx.Err()
		default:
		}
		if err := stream.Read(); err != nil {
			stream.Stop()
			return wav.Buffer{}, fmt.Errorf("shazoom: reading capture stream: %w", err)
		}
		raw = append(raw, buffer...)
	}

	if err := stream.Stop(); err != nil {
		return wav.Buffer{}, fmt.Errorf("shazoom: stopping capture stream: %w", err)
	}

	actualSampleRate := int(stream.Info().SampleRate)
	logger.InfoContext(ctx, "capture finished", "samples", len(raw), "sample_rate", actualSampleRate)

	samples := make([]float64, len(raw))
	for i, s := range raw {
		samples[i] = float64(s) / 32767.0
	}

	filtered := lowPassFilter(lowPassCutoffHz, float64(actualSampleRate), samples)
	targetRate := actualSampleRate / downsampleRatio
	downsampled, err := downsample(filtered, actualSampleRate, targetRate)
	if err != nil {
		return wav.Buffer{}, fmt.Errorf("shazoom: downsampling capture: %w", err)
	}

	out := make([]float32, len(downsampled))
	for i, v := range downsampled {
		out[i] = float32(v)
	}

	return wav.Buffer{SampleRate: targetRate, Samples: out}, nil
}

// lowPassFilter is a single-pole RC low-pass filter, adapted unchanged
// in shape from the teacher's core.LowPassFilter.
func lowPassFilter(cutoffHz, sampleRateHz float64, input []float64) []float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoffHz)
	dt := 1.0 / sampleRateHz
	alpha := dt / (rc + dt)

	out := make([]float64, len(input))
	var prev float64
	for i, x := range input {
		if i == 0 {
			out[i] = x * alpha
		} else {
			out[i] = alpha*x + (1-alpha)*prev
		}
		prev = out[i]
	}
	return out
}

// downsample averages consecutive runs of input down to targetRate,
// adapted unchanged in shape from the teacher's core.Downsample.
func downsample(input []float64, originalRate, targetRate int) ([]float64, error) {
	if originalRate <= 0 || targetRate <= 0 {
		return nil, fmt.Errorf("shazoom: sample rates must be positive")
	}
	if targetRate > originalRate {
		return nil, fmt.Errorf("shazoom: target rate must not exceed original rate")
	}

	ratio := originalRate / targetRate
	if ratio <= 0 {
		return nil, fmt.Errorf("shazoom: invalid downsample ratio")
	}

	out := make([]float64, 0, len(input)/ratio+1)
	for i := 0; i < len(input); i += ratio {
		end := i + ratio
		if end > len(input) {
			end = len(input)
		}
		var sum float64
		for j := i; j < end; j++ {
			sum += input[j]
		}
		out = append(out, sum/float64(end-i))
	}
	return out, nil
}
