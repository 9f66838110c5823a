package frame

import (
	"fmt"
	"math"
)

// LinearSpectrum is the positive half of the DFT of a real, mono input of
// length N. RealPart and ImaginaryPart hold N/2 bins; Header.NumSamples
// records the original time-domain length N so Bandwidth/Frequency/Bin can
// reconstruct bin spacing.
type LinearSpectrum struct {
	Header
	RealPart      []float32
	ImaginaryPart []float32
}

// NewLinearSpectrum constructs a LinearSpectrum. real and imaginary must
// each have length inputLength/2.
func NewLinearSpectrum(frameIndex int64, format AudioFormat, inputLength int, real, imaginary []float32) (LinearSpectrum, error) {
	if len(real) != len(imaginary) {
		return LinearSpectrum{}, &FormatError{Op: "NewLinearSpectrum", Reason: "real and imaginary arrays must have equal length"}
	}
	if want := inputLength / 2; len(real) != want {
		return LinearSpectrum{}, &FormatError{Op: "NewLinearSpectrum", Reason: fmt.Sprintf("expected %d bins for input length %d, got %d", want, inputLength, len(real))}
	}
	return LinearSpectrum{
		Header:        Header{FrameIndex: frameIndex, Format: format, NumSamples: inputLength},
		RealPart:      real,
		ImaginaryPart: imaginary,
	}, nil
}

// Magnitudes returns sqrt(real^2+imag^2) per bin.
func (s LinearSpectrum) Magnitudes() []float32 {
	out := make([]float32, len(s.RealPart))
	for i := range s.RealPart {
		out[i] = magnitude(s.RealPart[i], s.ImaginaryPart[i])
	}
	return out
}

// Powers returns real^2+imag^2 per bin.
func (s LinearSpectrum) Powers() []float32 {
	out := make([]float32, len(s.RealPart))
	for i := range s.RealPart {
		re, im := s.RealPart[i], s.ImaginaryPart[i]
		out[i] = re*re + im*im
	}
	return out
}

// Data returns the magnitudes view.
func (s LinearSpectrum) Data() []float32 { return s.Magnitudes() }

// Bandwidth is sample_rate/N, the frequency spacing of one bin.
func (s LinearSpectrum) Bandwidth() float32 {
	if s.NumSamples == 0 {
		return 0
	}
	return float32(s.Format.SampleRate) / float32(s.NumSamples)
}

// Frequency returns the centre frequency of bin k. Bins outside [0, N)
// report 0; bins in the upper mirror half [N/2, N) report the frequency of
// their conjugate-symmetric partner N-k, so Frequency(N-1) == Frequency(1).
func (s LinearSpectrum) Frequency(k int) float32 {
	n := s.NumSamples
	if n == 0 || k < 0 || k >= n {
		return 0
	}
	half := n / 2
	if k < half {
		return float32(k) * s.Bandwidth()
	}
	return s.Frequency(n - k)
}

// Bin returns the index of the bin whose centre frequency is closest to f,
// clamped to the valid half-spectrum range [0, N/2).
func (s LinearSpectrum) Bin(f float32) int {
	n := s.NumSamples
	half := n / 2
	if half == 0 {
		return 0
	}
	bw := s.Bandwidth()
	if bw == 0 {
		return 0
	}
	b := int(math.Round(float64(f / bw)))
	if b < 0 {
		b = 0
	}
	if b >= half {
		b = half - 1
	}
	return b
}

// Clone deep-copies both arrays.
func (s LinearSpectrum) Clone() LinearSpectrum {
	re := make([]float32, len(s.RealPart))
	im := make([]float32, len(s.ImaginaryPart))
	copy(re, s.RealPart)
	copy(im, s.ImaginaryPart)
	return LinearSpectrum{Header: s.Header, RealPart: re, ImaginaryPart: im}
}

// Reuse overwrites s in place; inputLength is the original time-domain
// frame length, not len(real).
func (s *LinearSpectrum) Reuse(frameIndex int64, inputLength int, real, imaginary []float32) {
	s.FrameIndex = frameIndex
	s.NumSamples = inputLength
	s.RealPart = real
	s.ImaginaryPart = imaginary
}
