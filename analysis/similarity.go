// Package analysis implements the accumulating analytical processors that
// emit only at flush: self-similarity, novelty, onset strength, and a
// generic audio-matrix collector (spec.md §4.11-§4.13). Grounded in the
// teacher's internal/analysis/similarity.go, whose ComputeSimilarity/
// BuildGraph pair is exactly this shape — an injected weighted distance
// function applied pairwise, O(n^2), over a fixed collection — generalized
// here from per-track feature vectors to per-frame distance matrices, and
// internal/analysis/features.go's computeSpectralFlux, generalized into
// onset strength over a stream of spectra.
package analysis

import (
	"fmt"
	"math"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// DistanceFunc computes a distance between two accumulated frames. The
// self-similarity matrix entry (i, j) is DistanceFunc(frames[i], frames[j]).
type DistanceFunc func(a, b frame.Frame) float32

// CosineDistance returns the cosine similarity between two frames' Data()
// views, the distance function spec.md §8's scenario 7 exercises: 1.0 for
// identical (or parallel) vectors, 0 for orthogonal ones.
func CosineDistance(a, b frame.Frame) float32 {
	da, db := dataOf(a), dataOf(b)
	n := len(da)
	if len(db) < n {
		n = len(db)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(da[i]) * float64(db[i])
		na += float64(da[i]) * float64(da[i])
		nb += float64(db[i]) * float64(db[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func dataOf(f frame.Frame) []float32 {
	type dataer interface{ Data() []float32 }
	if d, ok := f.(dataer); ok {
		return d.Data()
	}
	return nil
}

// SelfSimilarity accumulates every input frame (cloned, per spec.md §3.4's
// requirement that accumulators sever exclusivity with producers), and on
// Flush computes the N x N distance matrix over them, per spec.md §4.11.
// Bandwidth, if positive, restricts computation to |i-j| <= Bandwidth/2;
// entries outside the band are 0.
type SelfSimilarity struct {
	*graph.BaseProcessor
	Distance  DistanceFunc
	Bandwidth int

	frames []frame.Frame
}

// NewSelfSimilarity constructs a SelfSimilarity accumulator. distance must
// not be nil. bandwidth <= 0 means unrestricted (the full matrix is
// computed).
func NewSelfSimilarity(id graph.ID, distance DistanceFunc, bandwidth int) (*SelfSimilarity, error) {
	if distance == nil {
		return nil, &graph.ConfigError{Component: "SelfSimilarity", Reason: "distance function must not be nil"}
	}
	s := &SelfSimilarity{Distance: distance, Bandwidth: bandwidth}
	s.BaseProcessor = graph.NewBaseProcessor(id, nil, s.equalSelf, s.string)
	return s, nil
}

func (s *SelfSimilarity) equalSelf(other graph.Processor) bool {
	o, ok := other.(*SelfSimilarity)
	return ok && s.Bandwidth == o.Bandwidth
}

func (s *SelfSimilarity) string() string {
	return fmt.Sprintf("SelfSimilarity{%sbandwidth=%d}", idPrefix(s.ID()), s.Bandwidth)
}

// Process accumulates a deep clone of in.
func (s *SelfSimilarity) Process(in frame.Frame) error {
	s.frames = append(s.frames, cloneFrame(in))
	return nil
}

// ProcessChannel treats every channel as channel 0.
func (s *SelfSimilarity) ProcessChannel(channel int, in frame.Frame) error { return s.Process(in) }

// Read is unsupported: SelfSimilarity only emits at flush, a push-only
// shape spec.md §7 calls out as a programmer error if pulled.
func (s *SelfSimilarity) Read() (frame.Frame, error) {
	return nil, fmt.Errorf("analysis: SelfSimilarity does not support pull mode")
}

// Flush computes the accumulated distance matrix and forwards it, then
// forwards flush downstream.
func (s *SelfSimilarity) Flush() error {
	n := len(s.frames)
	values := make([]float32, n*n)
	half := s.Bandwidth / 2
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if s.Bandwidth > 0 {
				d := i - j
				if d < 0 {
					d = -d
				}
				if d > half {
					continue
				}
			}
			values[i*n+j] = s.Distance(s.frames[i], s.frames[j])
		}
	}
	var format frame.AudioFormat
	if n > 0 {
		format = s.frames[0].Head().Format
	}
	m, err := frame.NewMatrix(0, format, n, n, values)
	if err != nil {
		return err
	}
	s.SetOutput(m)
	if err := s.FanOut().Process(m); err != nil {
		return err
	}
	return s.FanOut().Flush()
}

func cloneFrame(f frame.Frame) frame.Frame {
	switch v := f.(type) {
	case frame.Real:
		return v.Clone()
	case frame.Complex:
		return v.Clone()
	case frame.LinearSpectrum:
		return v.Clone()
	case frame.LogFrequencySpectrum:
		return v.Clone()
	case frame.InstantaneousFrequencySpectrum:
		return v.Clone()
	case frame.MelSpectrum:
		return v.Clone()
	case frame.MultiBandSpectrum:
		return v.Clone()
	case frame.Matrix:
		return v.Clone()
	default:
		return f
	}
}
