// Package spectrum turns sliced sample windows into magnitude spectra.
// The FFT kernel is adapted from the teacher's core.FFT (recursive
// Cooley-Tukey, radix-2): the spec singles out "the FFT framing" as one of
// the hard parts this system owns rather than delegates, so both the
// teacher's variants (core/FFT.go, main/pipeline/FFT.go) hand-roll it, and
// so do we.
package spectrum

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of input, a sequence of
// real-valued samples. Unlike the teacher's FFT (which requires a
// power-of-two length), this one accepts any length: spec.md §4.2 requires
// zero-padding each window to exactly sample_rate samples before
// transforming, and sample rates like 44100 or 8000 are not powers of two.
// Power-of-two lengths take the fast radix-2 path directly; other lengths
// go through Bluestein's algorithm, which reduces an arbitrary-length DFT
// to a convolution computable with the same radix-2 kernel.
func FFT(input []float64) []complex128 {
	complexInput := make([]complex128, len(input))
	for i, v := range input {
		complexInput[i] = complex(v, 0)
	}
	return Transform(complexInput)
}

// Transform is the complex-to-complex DFT used by FFT, exposed separately
// so tests can exercise both the radix-2 and Bluestein paths directly.
func Transform(input []complex128) []complex128 {
	if len(input) == 0 {
		return nil
	}
	if isPowerOfTwo(len(input)) {
		return radix2(input)
	}
	return bluestein(input)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// radix2 is the teacher's recursiveFFT, renamed and kept private: the
// divide-and-conquer Cooley-Tukey butterfly over even/odd indexed samples.
func radix2(input []complex128) []complex128 {
	n := len(input)
	if n <= 1 {
		return input
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = input[2*i]
		odd[i] = input[2*i+1]
	}

	even = radix2(even)
	odd = radix2(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		angle := -2 * math.Pi * float64(k) / float64(n)
		twiddle := complex(math.Cos(angle), math.Sin(angle))
		result[k] = even[k] + twiddle*odd[k]
		result[k+n/2] = even[k] - twiddle*odd[k]
	}
	return result
}

// bluestein computes the DFT of an arbitrary-length sequence by turning it
// into a length-M convolution, M the next power of two at least 2n-1, and
// evaluating that convolution with the radix2 kernel above.
func bluestein(x []complex128) []complex128 {
	n := len(x)
	m := nextPowerOfTwo(2*n - 1)

	chirp := make([]complex128, n)
	for k := 0; k < n; k++ {
		// k*k can overflow a 32-bit-ish float mantissa for large k; reduce
		// mod 2n first since the chirp is periodic with period 2n.
		kk := (k * k) % (2 * n)
		angle := -math.Pi * float64(kk) / float64(n)
		chirp[k] = cmplx.Exp(complex(0, angle))
	}

	a := make([]complex128, m)
	for k := 0; k < n; k++ {
		a[k] = x[k] * chirp[k]
	}

	b := make([]complex128, m)
	b[0] = cmplx.Conj(chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(chirp[k])
		b[k] = c
		b[m-k] = c
	}

	A := radix2(a)
	B := radix2(b)
	conv := make([]complex128, m)
	for i := range conv {
		conv[i] = A[i] * B[i]
	}
	c := inverseRadix2(conv)

	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		out[k] = c[k] * chirp[k]
	}
	return out
}

func inverseRadix2(x []complex128) []complex128 {
	n := len(x)
	conjugated := make([]complex128, n)
	for i, v := range x {
		conjugated[i] = cmplx.Conj(v)
	}
	y := radix2(conjugated)
	out := make([]complex128, n)
	scale := complex(float64(n), 0)
	for i, v := range y {
		out[i] = cmplx.Conj(v) / scale
	}
	return out
}
