// Package gonumfft implements kernel.FFT and kernel.DCT on top of
// gonum.org/v1/gonum/dsp/fourier, the same library the teacher module
// drives directly in its internal/audio/analyzer.go and
// internal/analysis/features.go. Factoring it out behind the kernel
// interfaces is what lets transform stay kernel-agnostic per spec.md §1.
package gonumfft

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT wraps a *fourier.FFT sized for one fixed transform length.
type FFT struct {
	size   int
	fft    *fourier.FFT
	scratch []float64
}

// New constructs an FFT for the given transform size. size must be
// positive; gonum's fourier.NewFFT handles non-power-of-two sizes via a
// mixed-radix/Bluestein fallback, so no power-of-two restriction is
// imposed here.
func New(size int) *FFT {
	return &FFT{size: size, fft: fourier.NewFFT(size), scratch: make([]float64, size)}
}

// Size returns the transform length.
func (f *FFT) Size() int { return f.size }

// Coefficients computes the forward real FFT of samples and returns its
// real and imaginary parts, each of length size/2+1.
func (f *FFT) Coefficients(samples []float32) (re, im []float32) {
	for i, s := range samples {
		f.scratch[i] = float64(s)
	}
	coeffs := f.fft.Coefficients(nil, f.scratch)
	re = make([]float32, len(coeffs))
	im = make([]float32, len(coeffs))
	for i, c := range coeffs {
		re[i] = float32(real(c))
		im[i] = float32(imag(c))
	}
	return re, im
}

// DCT wraps a *fourier.DCT sized for one fixed transform length,
// implementing kernel.DCT.
type DCT struct {
	size    int
	dct     *fourier.DCT
	scratch []float64
}

// NewDCT constructs a DCT-II transform for the given length.
func NewDCT(size int) *DCT {
	return &DCT{size: size, dct: fourier.NewDCT(size), scratch: make([]float64, size)}
}

// Size returns the transform length.
func (d *DCT) Size() int { return d.size }

// Transform computes the DCT-II of samples.
func (d *DCT) Transform(samples []float32) []float32 {
	for i, s := range samples {
		d.scratch[i] = float64(s)
	}
	out := d.dct.Transform(nil, d.scratch)
	result := make([]float32, len(out))
	for i, v := range out {
		result[i] = float32(v)
	}
	return result
}
