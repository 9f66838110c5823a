package frame

import "math"

// LogFrequencySpectrum carries a constant-Q (log-frequency) magnitude
// spectrum: bins spaced at a constant ratio rather than a constant
// difference, as produced by a constant-Q kernel (frame.Frame consumer,
// kernel itself out of scope per spec.md §1).
type LogFrequencySpectrum struct {
	Header
	Q           float32
	Frequencies []float32
	Magnitudes_ []float32
}

// NewLogFrequencySpectrum constructs a LogFrequencySpectrum. frequencies
// and magnitudes must have equal length.
func NewLogFrequencySpectrum(frameIndex int64, format AudioFormat, q float32, frequencies, magnitudes []float32) (LogFrequencySpectrum, error) {
	if len(frequencies) != len(magnitudes) {
		return LogFrequencySpectrum{}, &FormatError{Op: "NewLogFrequencySpectrum", Reason: "frequencies and magnitudes arrays must have equal length"}
	}
	return LogFrequencySpectrum{
		Header:      Header{FrameIndex: frameIndex, Format: format, NumSamples: len(frequencies)},
		Q:           q,
		Frequencies: frequencies,
		Magnitudes_: magnitudes,
	}, nil
}

// Magnitudes returns the per-bin magnitude array.
func (s LogFrequencySpectrum) Magnitudes() []float32 { return s.Magnitudes_ }

// Powers returns the per-bin squared magnitude array.
func (s LogFrequencySpectrum) Powers() []float32 {
	out := make([]float32, len(s.Magnitudes_))
	for i, m := range s.Magnitudes_ {
		out[i] = m * m
	}
	return out
}

// Data returns the magnitudes view.
func (s LogFrequencySpectrum) Data() []float32 { return s.Magnitudes() }

// BinsPerSemitone returns 1/(12*log2((Q+1)/Q)), the number of constant-Q
// bins spanning one semitone for quality factor q.
func BinsPerSemitone(q float32) float32 {
	if q <= 0 {
		return 0
	}
	ratio := float64(q+1) / float64(q)
	return float32(1 / (12 * math.Log2(ratio)))
}

// Bin returns the index of the bin whose explicit frequency is closest to
// f, or -1 if the spectrum has no bins.
func (s LogFrequencySpectrum) Bin(f float32) int {
	if len(s.Frequencies) == 0 {
		return -1
	}
	best, bestDiff := 0, float32(math.MaxFloat32)
	for i, freq := range s.Frequencies {
		d := freq - f
		if d < 0 {
			d = -d
		}
		if d < bestDiff {
			bestDiff = d
			best = i
		}
	}
	return best
}

// Shift returns a copy of s with its magnitude array shifted by n bins: a
// positive n inserts n zeros at the front (dropping n values off the end);
// a negative n drops |n| values off the front (appending zeros at the
// end). Frequencies are carried unshifted, matching the constant-Q kernel's
// bin layout.
func (s LogFrequencySpectrum) Shift(n int) LogFrequencySpectrum {
	out := make([]float32, len(s.Magnitudes_))
	switch {
	case n > 0:
		for i := len(out) - 1; i >= n; i-- {
			out[i] = s.Magnitudes_[i-n]
		}
	case n < 0:
		shift := -n
		for i := 0; i+shift < len(s.Magnitudes_); i++ {
			out[i] = s.Magnitudes_[i+shift]
		}
	default:
		copy(out, s.Magnitudes_)
	}
	freqs := make([]float32, len(s.Frequencies))
	copy(freqs, s.Frequencies)
	return LogFrequencySpectrum{Header: s.Header, Q: s.Q, Frequencies: freqs, Magnitudes_: out}
}

// Clone deep-copies both arrays.
func (s LogFrequencySpectrum) Clone() LogFrequencySpectrum {
	freqs := make([]float32, len(s.Frequencies))
	mags := make([]float32, len(s.Magnitudes_))
	copy(freqs, s.Frequencies)
	copy(mags, s.Magnitudes_)
	return LogFrequencySpectrum{Header: s.Header, Q: s.Q, Frequencies: freqs, Magnitudes_: mags}
}
