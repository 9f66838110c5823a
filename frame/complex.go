package frame

import "math"

// Complex carries a complex-valued sequence: a full (not positive-half-only)
// DFT result, or any other paired real/imaginary signal.
type Complex struct {
	Header
	RealPart      []float32
	ImaginaryPart []float32
}

// NewComplex constructs a Complex frame. real and imaginary must be the
// same length; callers that can't guarantee this should use
// NewComplexChecked.
func NewComplex(frameIndex int64, format AudioFormat, real, imaginary []float32) Complex {
	return Complex{
		Header:        Header{FrameIndex: frameIndex, Format: format, NumSamples: len(real)},
		RealPart:      real,
		ImaginaryPart: imaginary,
	}
}

// NewComplexChecked is NewComplex but reports a format error when the real
// and imaginary arrays differ in length, per spec.md §3's invariant that
// real/imaginary array lengths must be equal.
func NewComplexChecked(frameIndex int64, format AudioFormat, real, imaginary []float32) (Complex, error) {
	if len(real) != len(imaginary) {
		return Complex{}, &FormatError{Op: "NewComplex", Reason: "real and imaginary arrays must have equal length"}
	}
	return NewComplex(frameIndex, format, real, imaginary), nil
}

// Magnitudes returns sqrt(real^2 + imag^2) for each bin.
func (c Complex) Magnitudes() []float32 {
	out := make([]float32, len(c.RealPart))
	for i := range c.RealPart {
		out[i] = magnitude(c.RealPart[i], c.ImaginaryPart[i])
	}
	return out
}

// Powers returns real^2 + imag^2 for each bin.
func (c Complex) Powers() []float32 {
	out := make([]float32, len(c.RealPart))
	for i := range c.RealPart {
		re, im := c.RealPart[i], c.ImaginaryPart[i]
		out[i] = re*re + im*im
	}
	return out
}

// Data returns the magnitudes view.
func (c Complex) Data() []float32 { return c.Magnitudes() }

// Clone deep-copies both arrays.
func (c Complex) Clone() Complex {
	re := make([]float32, len(c.RealPart))
	im := make([]float32, len(c.ImaginaryPart))
	copy(re, c.RealPart)
	copy(im, c.ImaginaryPart)
	return Complex{Header: c.Header, RealPart: re, ImaginaryPart: im}
}

// Reuse overwrites c in place. See Real.Reuse for the ownership contract.
func (c *Complex) Reuse(frameIndex int64, real, imaginary []float32) {
	c.FrameIndex = frameIndex
	c.NumSamples = len(real)
	c.RealPart = real
	c.ImaginaryPart = imaginary
}

func magnitude(re, im float32) float32 {
	return float32(math.Sqrt(float64(re*re + im*im)))
}
