package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// FrameNumberFilter passes through only frames whose FrameIndex falls in
// [MinFrameNumber, MaxFrameNumber], per SPEC_FULL.md §4.16.
type FrameNumberFilter struct {
	*graph.BaseProcessor
	MinFrameNumber int64
	MaxFrameNumber int64
}

// NewFrameNumberFilter constructs a FrameNumberFilter. min must be <= max.
func NewFrameNumberFilter(id graph.ID, min, max int64) (*FrameNumberFilter, error) {
	if min > max {
		return nil, &graph.ConfigError{Component: "FrameNumberFilter", Reason: "min must be <= max"}
	}
	f := &FrameNumberFilter{MinFrameNumber: min, MaxFrameNumber: max}
	f.BaseProcessor = graph.NewBaseProcessor(id, f.next, f.equalSelf, f.string)
	return f, nil
}

func (f *FrameNumberFilter) equalSelf(other graph.Processor) bool {
	o, ok := other.(*FrameNumberFilter)
	return ok && f.MinFrameNumber == o.MinFrameNumber && f.MaxFrameNumber == o.MaxFrameNumber
}

func (f *FrameNumberFilter) string() string {
	return fmt.Sprintf("FrameNumberFilter{%sminFrameNumber=%d, maxFrameNumber=%d}", idPrefix(f.ID()), f.MinFrameNumber, f.MaxFrameNumber)
}

func (f *FrameNumberFilter) next(in frame.Frame) (frame.Frame, bool, error) {
	idx := in.Head().FrameIndex
	if idx < f.MinFrameNumber || idx > f.MaxFrameNumber {
		return nil, false, nil
	}
	return in, true, nil
}

// Downsample keeps every nth frame it sees (the 1st, the (n+1)th, the
// (2n+1)th, ...) and drops the rest, per SPEC_FULL.md §4.16. Scenario:
// feeding 100-sample mono frames at nthFrameToKeep=2 halves both the
// frame's sample rate reporting and its emission rate.
type Downsample struct {
	*graph.BaseProcessor
	NthFrameToKeep int

	count int
}

// NewDownsample constructs a Downsample processor. nthFrameToKeep must be
// at least 1.
func NewDownsample(id graph.ID, nthFrameToKeep int) (*Downsample, error) {
	if nthFrameToKeep < 1 {
		return nil, &graph.ConfigError{Component: "Downsample", Reason: "nthFrameToKeep must be at least 1"}
	}
	d := &Downsample{NthFrameToKeep: nthFrameToKeep}
	d.BaseProcessor = graph.NewBaseProcessor(id, d.next, d.equalSelf, d.string)
	return d, nil
}

func (d *Downsample) equalSelf(other graph.Processor) bool {
	o, ok := other.(*Downsample)
	return ok && d.NthFrameToKeep == o.NthFrameToKeep
}

func (d *Downsample) string() string {
	return fmt.Sprintf("Downsample{%snthFrameToKeep=%d}", idPrefix(d.ID()), d.NthFrameToKeep)
}

func (d *Downsample) next(in frame.Frame) (frame.Frame, bool, error) {
	keep := d.count%d.NthFrameToKeep == 0
	d.count++
	if !keep {
		return nil, false, nil
	}
	r, ok := in.(frame.Real)
	if !ok {
		return in, true, nil
	}
	newFrameIndex := r.FrameIndex / int64(d.NthFrameToKeep)
	newFormat := r.Format
	newFormat.SampleRate = r.Format.SampleRate / d.NthFrameToKeep
	return frame.NewReal(newFrameIndex, newFormat, r.Samples), true, nil
}

// Resample changes a stream's effective sample rate by a simple rational
// factor. This version only supports downsampling (factor numerator 1):
// NewResample reports a *graph.ConfigError for any other numerator, per
// SPEC_FULL.md §4.17's resolution of spec.md's upsampling gap.
type Resample struct {
	*Downsample
	Numerator, Denominator int
}

// NewResample constructs a Resample processor implemented as a Downsample
// by denominator. Only numerator == 1 is supported in this version.
func NewResample(id graph.ID, numerator, denominator int) (*Resample, error) {
	if numerator != 1 {
		return nil, &graph.ConfigError{Component: "Resample", Reason: "only downsampling (numerator == 1) is supported"}
	}
	d, err := NewDownsample(id, denominator)
	if err != nil {
		return nil, err
	}
	r := &Resample{Downsample: d, Numerator: numerator, Denominator: denominator}
	r.Downsample.BaseProcessor = graph.NewBaseProcessor(id, r.Downsample.next, r.equalSelf, r.string)
	return r, nil
}

func (r *Resample) equalSelf(other graph.Processor) bool {
	o, ok := other.(*Resample)
	return ok && r.Numerator == o.Numerator && r.Denominator == o.Denominator
}

func (r *Resample) string() string {
	return fmt.Sprintf("Resample{%sfactor=%d/%d}", idPrefix(r.ID()), r.Numerator, r.Denominator)
}
