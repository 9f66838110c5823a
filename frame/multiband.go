package frame

// MultiBandSpectrum carries K aggregated energy values, one per frequency
// band, alongside the K+1 strictly increasing band boundaries that define
// them.
type MultiBandSpectrum struct {
	Header
	Boundaries []float32 // length K+1
	Values     []float32 // length K
}

// NewMultiBandSpectrum validates and constructs a MultiBandSpectrum.
// Boundaries must be strictly increasing and at least 2 long (one band);
// values must have exactly len(boundaries)-1 entries.
func NewMultiBandSpectrum(frameIndex int64, format AudioFormat, boundaries, values []float32) (MultiBandSpectrum, error) {
	if len(boundaries) < 2 {
		return MultiBandSpectrum{}, &FormatError{Op: "NewMultiBandSpectrum", Reason: "boundaries must have at least 2 entries"}
	}
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] <= boundaries[i-1] {
			return MultiBandSpectrum{}, &FormatError{Op: "NewMultiBandSpectrum", Reason: "boundaries must be strictly increasing"}
		}
	}
	if len(values) != len(boundaries)-1 {
		return MultiBandSpectrum{}, &FormatError{Op: "NewMultiBandSpectrum", Reason: "values length must equal len(boundaries)-1"}
	}
	return MultiBandSpectrum{
		Header:     Header{FrameIndex: frameIndex, Format: format, NumSamples: len(values)},
		Boundaries: boundaries,
		Values:     values,
	}, nil
}

// Data returns the per-band aggregated values.
func (m MultiBandSpectrum) Data() []float32 { return m.Values }

// Bin returns the index of the band containing frequency f, or -1 if f
// falls outside [Boundaries[0], Boundaries[len-1]).
func (m MultiBandSpectrum) Bin(f float32) int {
	for i := 1; i < len(m.Boundaries); i++ {
		if f >= m.Boundaries[i-1] && f < m.Boundaries[i] {
			return i - 1
		}
	}
	return -1
}

// Clone deep-copies both arrays.
func (m MultiBandSpectrum) Clone() MultiBandSpectrum {
	b := make([]float32, len(m.Boundaries))
	v := make([]float32, len(m.Values))
	copy(b, m.Boundaries)
	copy(v, m.Values)
	return MultiBandSpectrum{Header: m.Header, Boundaries: b, Values: v}
}
