package framing

import (
	"fmt"
	"math"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// WindowFunc computes one window-function coefficient for sample i of n,
// per the conventions in the teacher's internal/analysis/features.go and
// internal/audio/analyzer.go (both build a Hanning window the same way:
// one coefficient array sized to the analysis frame, recomputed whenever
// that size changes).
type WindowFunc func(i, n int) float32

// Hamming is the classic raised-cosine window: 0.54 - 0.46*cos(2*pi*i/(n-1)).
func Hamming(i, n int) float32 {
	if n <= 1 {
		return 1
	}
	return float32(0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}

// Hanning is the raised-cosine window used by the teacher's FFT analysis
// path: 0.5*(1 - cos(2*pi*i/(n-1))).
func Hanning(i, n int) float32 {
	if n <= 1 {
		return 1
	}
	return float32(0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1))))
}

// Window multiplies every input frame.Real by a window function's
// coefficients, recomputing the coefficient array whenever the input
// length changes (slices from a single SlidingWindow upstream are all the
// same length, so in practice this happens once).
type Window struct {
	*graph.BaseProcessor
	Name string
	Fn   WindowFunc

	coeffs []float32
}

// NewWindow constructs a Window processor. name is used only for String()
// ("Hamming{}", "Hanning{}", ...); pass the matching WindowFunc in fn.
func NewWindow(id graph.ID, name string, fn WindowFunc) *Window {
	w := &Window{Name: name, Fn: fn}
	w.BaseProcessor = graph.NewBaseProcessor(id, w.next, w.equalSelf, w.string)
	return w
}

// NewHamming constructs a Hamming-windowing processor.
func NewHamming(id graph.ID) *Window { return NewWindow(id, "Hamming", Hamming) }

// NewHanning constructs a Hanning-windowing processor.
func NewHanning(id graph.ID) *Window { return NewWindow(id, "Hanning", Hanning) }

func (w *Window) equalSelf(other graph.Processor) bool {
	o, ok := other.(*Window)
	return ok && w.Name == o.Name
}

func (w *Window) string() string {
	if id := w.ID(); id != nil {
		return fmt.Sprintf("%s{id=%v}", w.Name, id)
	}
	return w.Name + "{}"
}

func (w *Window) next(in frame.Frame) (frame.Frame, bool, error) {
	r, ok := in.(frame.Real)
	if !ok {
		return nil, false, &frame.FormatError{Op: w.Name, Reason: "expected frame.Real input"}
	}
	n := len(r.Samples)
	if len(w.coeffs) != n {
		w.coeffs = make([]float32, n)
		for i := 0; i < n; i++ {
			w.coeffs[i] = w.Fn(i, n)
		}
	}
	out := make([]float32, n)
	for i, s := range r.Samples {
		out[i] = s * w.coeffs[i]
	}
	return r.Derive(r.FrameIndex, out), true, nil
}
