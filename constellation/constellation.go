// Package constellation turns a per-slice magnitude spectrum into a sparse
// set of peak frequency bins, the constellation map of spec.md §3. It is
// grounded on the teacher's core.ExtractPeaks — the bucket-max idea is the
// same — but the selection rule is spec.md §4.3's: sort bucket winners by
// amplitude and keep the top K, rather than the teacher's above-average
// threshold.
package constellation

import (
	"sort"

	"shazoom/config"
)

// Map is a constellation map: Map[t] holds at most freq_per_slice peak bin
// indices for slice t, in non-increasing amplitude order.
type Map [][]int

// Build partitions each slice's spectrum into cfg.BucketCount buckets of
// cfg.BucketSize bins each, picks the loudest bin per bucket (ties go to
// the lower bin index), sorts the bucket winners by amplitude descending
// (stable, so equal-amplitude winners keep bucket order), and keeps the
// first cfg.FreqPerSlice bin indices.
func Build(frames [][]float64, cfg config.Config) Map {
	out := make(Map, len(frames))
	limit := cfg.BucketSize * cfg.BucketCount

	type winner struct {
		bin int
		mag float64
	}

	for t, frame := range frames {
		truncated := frame
		if len(truncated) > limit {
			truncated = truncated[:limit]
		}

		winners := make([]winner, 0, cfg.BucketCount)
		for b := 0; b < cfg.BucketCount; b++ {
			lo := b * cfg.BucketSize
			hi := lo + cfg.BucketSize
			if lo >= len(truncated) {
				break
			}
			if hi > len(truncated) {
				hi = len(truncated)
			}
			if hi-lo < cfg.BucketSize {
				// Ragged tail bucket: spec.md §4.3 says to drop it.
				break
			}

			bestBin, bestMag := lo, truncated[lo]
			for i := lo + 1; i < hi; i++ {
				if truncated[i] > bestMag {
					bestMag, bestBin = truncated[i], i
				}
			}
			winners = append(winners, winner{bin: bestBin, mag: bestMag})
		}

		sort.SliceStable(winners, func(i, j int) bool {
			return winners[i].mag > winners[j].mag
		})

		k := cfg.FreqPerSlice
		if k > len(winners) {
			k = len(winners)
		}

		peaks := make([]int, k)
		for i := 0; i < k; i++ {
			peaks[i] = winners[i].bin
		}
		out[t] = peaks
	}

	return out
}
