// Package transform implements the frequency-domain processors: a
// linear-frequency spectrum transform driven by an injected kernel.FFT, and,
// over its output, an instantaneous-frequency derivation, a mel filterbank
// transform, and a multi-band aggregation. Grounded in the teacher's
// internal/audio/analyzer.go and internal/analysis/features.go, which pair
// a Hanning-windowed gonum FFT with exactly this shape of "windowed
// samples in, magnitude spectrum out" processing, generalized here into
// reusable graph nodes that consume an injected kernel rather than calling
// gonum directly (spec.md §1/§7).
package transform

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
	"github.com/austinkregel/jipes/kernel"
)

// LinearSpectrumTransform converts mono frame.Real input into
// frame.LinearSpectrum output via an injected kernel.FFT, per spec.md
// §3.2's linear-frequency-spectrum semantics. Input frames must have
// exactly Size() samples and a single channel; anything else is a format
// error raised on the offending Process call, per spec.md §7's format
// error category.
type LinearSpectrumTransform struct {
	*graph.BaseProcessor
	FFT kernel.FFT
}

// NewLinearSpectrumTransform constructs a LinearSpectrumTransform driven by
// fft.
func NewLinearSpectrumTransform(id graph.ID, fft kernel.FFT) *LinearSpectrumTransform {
	t := &LinearSpectrumTransform{FFT: fft}
	t.BaseProcessor = graph.NewBaseProcessor(id, t.next, t.equalSelf, t.string)
	return t
}

func (t *LinearSpectrumTransform) equalSelf(other graph.Processor) bool {
	o, ok := other.(*LinearSpectrumTransform)
	return ok && t.FFT.Size() == o.FFT.Size()
}

func (t *LinearSpectrumTransform) string() string {
	return fmt.Sprintf("LinearSpectrumTransform{%ssize=%d}", idPrefix(t.ID()), t.FFT.Size())
}

func (t *LinearSpectrumTransform) next(in frame.Frame) (frame.Frame, bool, error) {
	r, ok := in.(frame.Real)
	if !ok {
		return nil, false, &frame.FormatError{Op: "LinearSpectrumTransform", Reason: "expected frame.Real input"}
	}
	if r.Format.Channels > 1 {
		return nil, false, &frame.FormatError{Op: "LinearSpectrumTransform", Reason: "transform requires a mono (single-channel) input frame"}
	}
	if len(r.Samples) != t.FFT.Size() {
		return nil, false, &frame.FormatError{Op: "LinearSpectrumTransform", Reason: fmt.Sprintf("expected %d samples, got %d", t.FFT.Size(), len(r.Samples))}
	}
	re, im := t.FFT.Coefficients(r.Samples)
	half := t.FFT.Size() / 2
	out, err := frame.NewLinearSpectrum(r.FrameIndex, r.Format, t.FFT.Size(), re[:half], im[:half])
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
