// Package fingerprint derives pair fingerprints from a constellation map
// (C4) and fuzzes their frequencies to absorb spectral drift (C5). The
// address-packing idea is adapted from the teacher's
// core.Fingerprint/createAddress, generalized from a fixed 9/9/14-bit
// layout to widths wide enough for arbitrary bucket_size*count_bucket and
// width_target_zone, and corrected per spec.md §9/§4.6: the teacher
// collapses repeated fingerprints by overwriting a map entry, but
// duplication within a song is load-bearing signal here, so a per-song
// stream is a slice, never deduplicated.
package fingerprint

import (
	"fmt"
	"sort"

	"shazoom/config"
	"shazoom/constellation"
)

const (
	freqBits  = 24
	freqMask  = 1<<freqBits - 1
	deltaBits = 16
	deltaMask = 1<<deltaBits - 1
)

// Key is a packed, comparable, hashable representation of a fingerprint
// triple ((f_anchor, f_target), Δt), suitable for use as a Go map key in
// the inverted index.
type Key uint64

// AnchorBin, TargetBin, and Delta decode the packed fields back out of a
// Key for diagnostics and logging, the same spirit as the original_source
// Signature debug formatter, which decoded a packed signature back into
// per-band frequencies.
func (k Key) AnchorBin() int { return int((uint64(k) >> (deltaBits + freqBits)) & freqMask) }
func (k Key) TargetBin() int { return int((uint64(k) >> deltaBits) & freqMask) }
func (k Key) Delta() int     { return int(uint64(k) & deltaMask) }

func (k Key) String() string {
	return fmt.Sprintf("{anchor=%d target=%d Δt=%d}", k.AnchorBin(), k.TargetBin(), k.Delta())
}

func newKey(anchorFreq, targetFreq, delta int) Key {
	a := uint64(anchorFreq) & freqMask
	b := uint64(targetFreq) & freqMask
	d := uint64(delta) & deltaMask
	return Key(a<<(deltaBits+freqBits) | b<<deltaBits | d)
}

// Triple is one ((f_anchor, f_target), Δt) pair emitted against a
// constellation map, tagged with the slice at which the anchor peak sits
// (the posting's anchor_slice).
type Triple struct {
	Key         Key
	AnchorSlice int
}

// fuzz clears the bits set in fuzzFactor from freq. Applying it twice is
// equal to applying it once, since AND-NOT is idempotent; fuzzFactor=0
// makes fuzzing a no-op, but it is still always applied per spec.md §9.
func fuzz(freq int, fuzzFactor uint32) int {
	return int(uint32(freq) &^ fuzzFactor)
}

// Fingerprints derives the full, order-stable stream of pair fingerprints
// for a constellation map. For every anchor slice i in [0, T-1) (the last
// slice is skipped: it has no forward target zone) and every anchor peak
// a in slice i, it looks at every target peak b in slices i+Δt for
// Δt ∈ [1, min(width_target_zone, T-i)), and emits a fuzzed triple when b
// falls in the half-open band [a-H/2, a+H/2) (H = target_zone_height,
// saturating at zero). Emission order is the lexicographic order
// (i, a, Δt, b) on raw bin values, independent of the constellation map's
// amplitude ordering, so two implementations given the same input produce
// identical streams.
func Fingerprints(cmap constellation.Map, cfg config.Config) []Triple {
	t := len(cmap)
	if t < 2 {
		return nil
	}

	sorted := make([][]int, t)
	for i, peaks := range cmap {
		cp := append([]int(nil), peaks...)
		sort.Ints(cp)
		sorted[i] = cp
	}

	half := cfg.TargetZoneHeight / 2

	var out []Triple
	for i := 0; i < t-1; i++ {
		maxDelta := cfg.TargetZoneWidth
		if t-i < maxDelta {
			maxDelta = t - i
		}

		for _, a := range sorted[i] {
			lo := a - half
			if lo < 0 {
				lo = 0
			}
			hi := a + half

			for delta := 1; delta < maxDelta; delta++ {
				for _, b := range sorted[i+delta] {
					if b < lo || b >= hi {
						continue
					}
					fa := fuzz(a, cfg.FuzzFactor)
					fb := fuzz(b, cfg.FuzzFactor)
					out = append(out, Triple{
						Key:         newKey(fa, fb, delta),
						AnchorSlice: i,
					})
				}
			}
		}
	}

	return out
}
