// Package kernel names the numeric-kernel interfaces, per spec.md §1's
// "the spec names the interfaces the core consumes from them" scoping: FFT,
// which the transform package consumes, and DCT, which no package in this
// module consumes. Implementations are injected, never hardcoded, so the
// core never imports a transform library directly. There is no inverse-FFT
// interface.
package kernel

// FFT computes the forward discrete Fourier transform of a real-valued,
// mono time-domain buffer. Coefficients returns n/2+1 complex bins for an
// n-sample input (the non-negative-frequency half, including both DC and
// Nyquist); callers that need exactly n/2 bins (per spec.md §3.2's
// LinearSpectrum convention) drop the Nyquist bin themselves.
//
// Implementations may reuse internal scratch space across calls but must
// not retain a reference to samples after Coefficients returns.
type FFT interface {
	// Size returns the transform length this FFT was constructed for.
	Size() int
	// Coefficients returns the real and imaginary parts of the forward
	// transform of samples, which must have length Size().
	Coefficients(samples []float32) (real, imag []float32)
}

// DCT computes a type-II discrete cosine transform over a real-valued
// buffer, injected the same way FFT is so that no cosine-transform library
// is imported directly by the core.
type DCT interface {
	// Size returns the transform length this DCT was constructed for.
	Size() int
	// Transform returns the DCT-II coefficients of samples, which must
	// have length Size().
	Transform(samples []float32) []float32
}
