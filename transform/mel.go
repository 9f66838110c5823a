package transform

import (
	"fmt"
	"math"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// MelTransform aggregates a frame.LinearSpectrum into a frame.MelSpectrum
// through a triangular mel filter bank, per spec.md §3.2. The filter edges
// are computed once, at construction, from NumFilters+2 equally-spaced
// points on the mel scale between 20Hz and the Nyquist frequency implied
// by SampleRate — the same conversion the teacher's
// internal/analysis/features.go createMelFilterbank uses (mel = 2595 *
// log10(1 + hz/700)), generalized from "build an explicit NxBins filter
// matrix" into "evaluate each filter's triangular weight on demand",
// which is what lets MelSpectrum carry just its boundary array instead of
// a full matrix.
type MelTransform struct {
	*graph.BaseProcessor
	NumFilters int
	SampleRate int

	boundaries []float32 // Hz edges, length NumFilters+2
}

// NewMelTransform constructs a MelTransform with numFilters triangular
// filters spanning 20Hz to sampleRate/2. numFilters must be at least 1 and
// sampleRate must be positive, else a *graph.ConfigError is returned.
func NewMelTransform(id graph.ID, numFilters, sampleRate int) (*MelTransform, error) {
	if numFilters < 1 {
		return nil, &graph.ConfigError{Component: "MelTransform", Reason: "numFilters must be at least 1"}
	}
	if sampleRate <= 0 {
		return nil, &graph.ConfigError{Component: "MelTransform", Reason: "sampleRate must be positive"}
	}
	m := &MelTransform{NumFilters: numFilters, SampleRate: sampleRate, boundaries: melBoundaries(numFilters, sampleRate)}
	m.BaseProcessor = graph.NewBaseProcessor(id, m.next, m.equalSelf, m.string)
	return m, nil
}

func hzToMel(hz float64) float64 { return 2595 * math.Log10(1+hz/700) }
func melToHz(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

func melBoundaries(numFilters, sampleRate int) []float32 {
	nyquist := float64(sampleRate) / 2
	lowMel, highMel := hzToMel(20), hzToMel(nyquist)
	out := make([]float32, numFilters+2)
	for i := range out {
		mel := lowMel + float64(i)*(highMel-lowMel)/float64(numFilters+1)
		out[i] = float32(melToHz(mel))
	}
	return out
}

func (m *MelTransform) equalSelf(other graph.Processor) bool {
	o, ok := other.(*MelTransform)
	return ok && m.NumFilters == o.NumFilters && m.SampleRate == o.SampleRate
}

func (m *MelTransform) string() string {
	return fmt.Sprintf("MelTransform{%snumFilters=%d, sampleRate=%d}", idPrefix(m.ID()), m.NumFilters, m.SampleRate)
}

// triangleWeight returns the triangular filter-bank weight for frequency f
// under the filter with left edge l, centre c and right edge r.
func triangleWeight(f, l, c, r float32) float32 {
	switch {
	case f <= l || f >= r:
		return 0
	case f <= c:
		if c == l {
			return 1
		}
		return (f - l) / (c - l)
	default:
		if r == c {
			return 1
		}
		return (r - f) / (r - c)
	}
}

func (m *MelTransform) next(in frame.Frame) (frame.Frame, bool, error) {
	s, ok := in.(frame.LinearSpectrum)
	if !ok {
		return nil, false, &frame.FormatError{Op: "MelTransform", Reason: "expected frame.LinearSpectrum input"}
	}
	powers := s.Powers()
	values := make([]float32, m.NumFilters)
	for i := 0; i < m.NumFilters; i++ {
		l, c, r := m.boundaries[i], m.boundaries[i+1], m.boundaries[i+2]
		var sum float32
		for k := range powers {
			f := s.Frequency(k)
			w := triangleWeight(f, l, c, r)
			if w == 0 {
				continue
			}
			sum += w * powers[k]
		}
		values[i] = float32(math.Sqrt(float64(sum)))
	}
	out, err := frame.NewMelSpectrum(s.FrameIndex, s.Format, m.boundaries, values)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
