package transform

import (
	"fmt"
	"math"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// MultiBandTransform aggregates a frame.LinearSpectrum into K bands via an
// explicit, strictly-increasing boundary array of length K+1, per spec.md
// §3.2: band i's value is the root-sum-of-powers over every source bin
// whose frequency falls in [boundaries[i], boundaries[i+1]); a band with
// no source bins reports 0.
type MultiBandTransform struct {
	*graph.BaseProcessor
	Boundaries []float32
}

// NewMultiBandTransform constructs a MultiBandTransform. boundaries must be
// strictly increasing with at least 2 entries, else a *graph.ConfigError
// is returned (spec.md §3.3's invariant on multi-band boundaries).
func NewMultiBandTransform(id graph.ID, boundaries []float32) (*MultiBandTransform, error) {
	if len(boundaries) < 2 {
		return nil, &graph.ConfigError{Component: "MultiBandTransform", Reason: "boundaries must have at least 2 entries"}
	}
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] <= boundaries[i-1] {
			return nil, &graph.ConfigError{Component: "MultiBandTransform", Reason: "boundaries must be strictly increasing"}
		}
	}
	cp := append([]float32(nil), boundaries...)
	m := &MultiBandTransform{Boundaries: cp}
	m.BaseProcessor = graph.NewBaseProcessor(id, m.next, m.equalSelf, m.string)
	return m, nil
}

func (m *MultiBandTransform) equalSelf(other graph.Processor) bool {
	o, ok := other.(*MultiBandTransform)
	if !ok || len(m.Boundaries) != len(o.Boundaries) {
		return false
	}
	for i := range m.Boundaries {
		if m.Boundaries[i] != o.Boundaries[i] {
			return false
		}
	}
	return true
}

func (m *MultiBandTransform) string() string {
	return fmt.Sprintf("MultiBandTransform{%sbands=%d}", idPrefix(m.ID()), len(m.Boundaries)-1)
}

func (m *MultiBandTransform) next(in frame.Frame) (frame.Frame, bool, error) {
	s, ok := in.(frame.LinearSpectrum)
	if !ok {
		return nil, false, &frame.FormatError{Op: "MultiBandTransform", Reason: "expected frame.LinearSpectrum input"}
	}
	powers := s.Powers()
	bands := len(m.Boundaries) - 1
	values := make([]float32, bands)
	for k := range powers {
		f := s.Frequency(k)
		for i := 0; i < bands; i++ {
			if f >= m.Boundaries[i] && f < m.Boundaries[i+1] {
				values[i] += powers[k]
				break
			}
		}
	}
	for i := range values {
		values[i] = float32(math.Sqrt(float64(values[i])))
	}
	out, err := frame.NewMultiBandSpectrum(s.FrameIndex, s.Format, m.Boundaries, values)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
