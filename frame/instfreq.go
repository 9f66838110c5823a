package frame

import "math"

// InstantaneousFrequencySpectrum carries, per bin, a magnitude and an
// instantaneous frequency estimate derived from the phase drift between two
// consecutive LinearSpectrum frames.
type InstantaneousFrequencySpectrum struct {
	Header
	Magnitudes_  []float32
	Frequencies_ []float32
}

// NewInstantaneousFrequencySpectrum derives an instantaneous-frequency
// spectrum from two consecutive LinearSpectrum frames of the same shape.
// Per bin k, the instantaneous frequency is the wrapped phase difference
// between cur and prev divided by 2*pi*dt, where dt is the time between the
// two frames; when cur and prev are identical every instantaneous frequency
// is exactly 0, matching spec.md §3's stated identity case.
func NewInstantaneousFrequencySpectrum(cur, prev LinearSpectrum) (InstantaneousFrequencySpectrum, error) {
	if cur.NumSamples != prev.NumSamples || len(cur.RealPart) != len(prev.RealPart) {
		return InstantaneousFrequencySpectrum{}, &FormatError{Op: "NewInstantaneousFrequencySpectrum", Reason: "cur and prev must share the same shape"}
	}
	if cur.Format.SampleRate <= 0 {
		return InstantaneousFrequencySpectrum{}, &FormatError{Op: "NewInstantaneousFrequencySpectrum", Reason: "sample rate must be positive"}
	}
	dt := float64(cur.FrameIndex-prev.FrameIndex) / float64(cur.Format.SampleRate)
	n := len(cur.RealPart)
	mags := make([]float32, n)
	freqs := make([]float32, n)
	if dt == 0 {
		mags = cur.Magnitudes()
		return InstantaneousFrequencySpectrum{
			Header:       cur.Header,
			Magnitudes_:  mags,
			Frequencies_: freqs,
		}, nil
	}
	for k := 0; k < n; k++ {
		mags[k] = magnitude(cur.RealPart[k], cur.ImaginaryPart[k])
		phaseCur := math.Atan2(float64(cur.ImaginaryPart[k]), float64(cur.RealPart[k]))
		phasePrev := math.Atan2(float64(prev.ImaginaryPart[k]), float64(prev.RealPart[k]))
		dphi := wrapPhase(phaseCur - phasePrev)
		freqs[k] = float32(dphi / (2 * math.Pi * dt))
	}
	return InstantaneousFrequencySpectrum{
		Header:       cur.Header,
		Magnitudes_:  mags,
		Frequencies_: freqs,
	}, nil
}

func wrapPhase(p float64) float64 {
	for p > math.Pi {
		p -= 2 * math.Pi
	}
	for p < -math.Pi {
		p += 2 * math.Pi
	}
	return p
}

// Magnitudes returns the per-bin magnitude array.
func (s InstantaneousFrequencySpectrum) Magnitudes() []float32 { return s.Magnitudes_ }

// Data returns the magnitudes view.
func (s InstantaneousFrequencySpectrum) Data() []float32 { return s.Magnitudes() }

// Bandwidth is sample_rate/N, identical to LinearSpectrum's.
func (s InstantaneousFrequencySpectrum) Bandwidth() float32 {
	if s.NumSamples == 0 {
		return 0
	}
	return float32(s.Format.SampleRate) / float32(s.NumSamples)
}

// Frequency returns the instantaneous frequency estimate stored for bin k,
// applying the same out-of-range and mirror-symmetry rules as
// LinearSpectrum.Frequency.
func (s InstantaneousFrequencySpectrum) Frequency(k int) float32 {
	n := s.NumSamples
	if n == 0 || k < 0 || k >= n {
		return 0
	}
	half := n / 2
	if k < half {
		return s.Frequencies_[k]
	}
	return s.Frequency(n - k)
}

// Bin returns the nearest bin index for frequency f, using the same
// bandwidth-based lookup as LinearSpectrum.Bin.
func (s InstantaneousFrequencySpectrum) Bin(f float32) int {
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
func (s InstantaneousFrequencySpectrum) Clone() InstantaneousFrequencySpectrum {
	m := make([]float32, len(s.Magnitudes_))
	f := make([]float32, len(s.Frequencies_))
	copy(m, s.Magnitudes_)
	copy(f, s.Frequencies_)
	return InstantaneousFrequencySpectrum{Header: s.Header, Magnitudes_: m, Frequencies_: f}
}
