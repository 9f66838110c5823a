package analysis

import (
	"fmt"
	"math"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// GaussianCheckerboardKernel builds the dim x dim novelty kernel spec.md
// §8 scenario 6 pins numerically: kernel[i][j] = sign(x)*sign(y)*exp(-(x^2+y^2)),
// where x and y are i and j recentred on the kernel's middle
// ((dim-1)/2), so the kernel is antisymmetric across its centre row/column
// (a Foote-style checkerboard novelty kernel, tapered by a fixed-variance
// Gaussian). dim may be even or odd; an odd dimension's centre row/column
// falls exactly on x==0 or y==0, where sign is 0, zeroing that row/column.
func GaussianCheckerboardKernel(dim int) [][]float32 {
	k := make([][]float32, dim)
	mid := float64(dim-1) / 2
	for i := 0; i < dim; i++ {
		k[i] = make([]float32, dim)
		x := float64(i) - mid
		for j := 0; j < dim; j++ {
			y := float64(j) - mid
			mag := math.Exp(-(x*x + y*y))
			k[i][j] = float32(signf(x) * signf(y) * mag)
		}
	}
	return k
}

func signf(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Novelty accumulates frames (cloned, like SelfSimilarity) and, on Flush,
// computes their pairwise distance matrix and convolves its diagonal with
// a GaussianCheckerboardKernel of the configured dimension, producing a
// 1-D novelty curve, per spec.md §4.12.
type Novelty struct {
	*graph.BaseProcessor
	Distance      DistanceFunc
	KernelDim     int
	ZeroPadEdges  bool

	frames []frame.Frame
}

// NewNovelty constructs a Novelty accumulator. distance must not be nil
// and kernelDim must be at least 1.
func NewNovelty(id graph.ID, distance DistanceFunc, kernelDim int, zeroPadEdges bool) (*Novelty, error) {
	if distance == nil {
		return nil, &graph.ConfigError{Component: "Novelty", Reason: "distance function must not be nil"}
	}
	if kernelDim < 1 {
		return nil, &graph.ConfigError{Component: "Novelty", Reason: "kernelDim must be at least 1"}
	}
	n := &Novelty{Distance: distance, KernelDim: kernelDim, ZeroPadEdges: zeroPadEdges}
	n.BaseProcessor = graph.NewBaseProcessor(id, nil, n.equalSelf, n.string)
	return n, nil
}

func (n *Novelty) equalSelf(other graph.Processor) bool {
	o, ok := other.(*Novelty)
	return ok && n.KernelDim == o.KernelDim && n.ZeroPadEdges == o.ZeroPadEdges
}

func (n *Novelty) string() string {
	return fmt.Sprintf("Novelty{%skernelDim=%d, zeroPadEdges=%t}", idPrefix(n.ID()), n.KernelDim, n.ZeroPadEdges)
}

// Process accumulates a deep clone of in.
func (n *Novelty) Process(in frame.Frame) error {
	n.frames = append(n.frames, cloneFrame(in))
	return nil
}

// ProcessChannel treats every channel as channel 0.
func (n *Novelty) ProcessChannel(channel int, in frame.Frame) error { return n.Process(in) }

// Read is unsupported; Novelty only emits at flush.
func (n *Novelty) Read() (frame.Frame, error) {
	return nil, fmt.Errorf("analysis: Novelty does not support pull mode")
}

// Flush computes the similarity matrix and the novelty curve derived from
// it, forwards the curve, then forwards flush downstream.
func (n *Novelty) Flush() error {
	size := len(n.frames)
	sim := make([][]float32, size)
	for i := range sim {
		sim[i] = make([]float32, size)
		for j := range sim[i] {
			sim[i][j] = n.Distance(n.frames[i], n.frames[j])
		}
	}
	kernel := GaussianCheckerboardKernel(n.KernelDim)
	half := n.KernelDim / 2
	curve := make([]float32, size)
	for i := 0; i < size; i++ {
		if !n.ZeroPadEdges && (i-half < 0 || i+n.KernelDim-half-1 >= size) {
			continue
		}
		var sum float32
		for di := 0; di < n.KernelDim; di++ {
			for dj := 0; dj < n.KernelDim; dj++ {
				row := i - half + di
				col := i - half + dj
				if row < 0 || row >= size || col < 0 || col >= size {
					continue // zero-padded border contributes nothing
				}
				sum += kernel[di][dj] * sim[row][col]
			}
		}
		curve[i] = sum
	}
	var format frame.AudioFormat
	if size > 0 {
		format = n.frames[0].Head().Format
	}
	out := frame.NewReal(0, format, curve)
	n.SetOutput(out)
	if err := n.FanOut().Process(out); err != nil {
		return err
	}
	return n.FanOut().Flush()
}
