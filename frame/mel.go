package frame

// MelSpectrum carries K mel-weighted energy values produced by a triangular
// filter bank. Boundaries holds the K+2 filter edges [L, C1..CK, R]: filter
// i spans Boundaries[i], Boundaries[i+1], Boundaries[i+2] as its left edge,
// centre and right edge.
type MelSpectrum struct {
	Header
	Boundaries []float32 // length K+2
	Values     []float32 // length K
}

// NewMelSpectrum validates and constructs a MelSpectrum.
func NewMelSpectrum(frameIndex int64, format AudioFormat, boundaries, values []float32) (MelSpectrum, error) {
	if len(boundaries) < 2 {
		return MelSpectrum{}, &FormatError{Op: "NewMelSpectrum", Reason: "boundaries must have at least 2 entries"}
	}
	if len(values) != len(boundaries)-2 {
		return MelSpectrum{}, &FormatError{Op: "NewMelSpectrum", Reason: "values length must equal len(boundaries)-2"}
	}
	return MelSpectrum{
		Header:     Header{FrameIndex: frameIndex, Format: format, NumSamples: len(values)},
		Boundaries: boundaries,
		Values:     values,
	}, nil
}

// Data returns the per-filter mel energies.
func (m MelSpectrum) Data() []float32 { return m.Values }

// Clone deep-copies both arrays.
func (m MelSpectrum) Clone() MelSpectrum {
	b := make([]float32, len(m.Boundaries))
	v := make([]float32, len(m.Values))
	copy(b, m.Boundaries)
	copy(v, m.Values)
	return MelSpectrum{Header: m.Header, Boundaries: b, Values: v}
}
