package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// ZeropadMode selects where Zeropad inserts padding relative to the
// original samples.
type ZeropadMode int

const (
	// Prepend inserts all padding before the original samples.
	Prepend ZeropadMode = iota
	// Append inserts all padding after the original samples.
	Append
	// Both splits the padding evenly before and after the original
	// samples, with any odd remainder going after.
	Both
)

func (m ZeropadMode) String() string {
	switch m {
	case Prepend:
		return "PREPEND"
	case Append:
		return "APPEND"
	case Both:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

// Zeropad pads every input frame.Real (and frame.Complex, padding both
// arrays identically) out to a fixed total length, per spec.md §4.6.
type Zeropad struct {
	*graph.BaseProcessor
	Mode             ZeropadMode
	SizeAfterPadding int
}

// NewZeropad constructs a Zeropad processor. sizeAfterPadding must be at
// least as large as any frame it will be asked to pad.
func NewZeropad(id graph.ID, mode ZeropadMode, sizeAfterPadding int) *Zeropad {
	z := &Zeropad{Mode: mode, SizeAfterPadding: sizeAfterPadding}
	z.BaseProcessor = graph.NewBaseProcessor(id, z.next, z.equalSelf, z.string)
	return z
}

func (z *Zeropad) equalSelf(other graph.Processor) bool {
	o, ok := other.(*Zeropad)
	return ok && z.Mode == o.Mode && z.SizeAfterPadding == o.SizeAfterPadding
}

func (z *Zeropad) string() string {
	return fmt.Sprintf("Zeropad{%s%s, sizeAfterPadding=%d}", idPrefix(z.ID()), z.Mode, z.SizeAfterPadding)
}

func (z *Zeropad) split(total int) (before, after int) {
	if total <= 0 {
		return 0, 0
	}
	switch z.Mode {
	case Prepend:
		return total, 0
	case Append:
		return 0, total
	default: // Both
		before = total / 2
		after = total - before
		return
	}
}

func (z *Zeropad) next(in frame.Frame) (frame.Frame, bool, error) {
	switch f := in.(type) {
	case frame.Real:
		pad := z.SizeAfterPadding - len(f.Samples)
		if pad < 0 {
			return nil, false, &frame.FormatError{Op: "Zeropad", Reason: "input longer than sizeAfterPadding"}
		}
		before, after := z.split(pad)
		out := make([]float32, z.SizeAfterPadding)
		copy(out[before:before+len(f.Samples)], f.Samples)
		_ = after
		return f.Derive(f.FrameIndex, out), true, nil
	case frame.Complex:
		pad := z.SizeAfterPadding - len(f.RealPart)
		if pad < 0 {
			return nil, false, &frame.FormatError{Op: "Zeropad", Reason: "input longer than sizeAfterPadding"}
		}
		before, _ := z.split(pad)
		re := make([]float32, z.SizeAfterPadding)
		im := make([]float32, z.SizeAfterPadding)
		copy(re[before:before+len(f.RealPart)], f.RealPart)
		copy(im[before:before+len(f.ImaginaryPart)], f.ImaginaryPart)
		return frame.NewComplex(f.FrameIndex, f.Format, re, im), true, nil
	default:
		return nil, false, &frame.FormatError{Op: "Zeropad", Reason: "unsupported frame type"}
	}
}
