package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// OLA (overlap-add) reconstructs a continuous, non-overlapping output
// stream from a sequence of overlapping frame.Real input slices. Each
// input frame is summed into an accumulation buffer starting at the
// current write cursor, which then advances by Hop; once the write cursor
// has passed a SliceLength-wide output region entirely (no further input
// frame can still contribute to it), that region is emitted as one
// non-overlapping output chunk, per spec.md §4.5.
//
// Because every input sample contributes to exactly one output position,
// the sum of every emitted sample equals the sum of every input sample
// (spec.md §8's sum-preservation law).
type OLA struct {
	*graph.BaseProcessor
	SliceLength int
	Hop         int

	acc         []float32
	writeCursor int
	emitCursor  int
	base        int64
	format      frame.AudioFormat
	seen        bool
}

// NewOLA constructs an OLA processor. sliceLength and hop must both be
// positive.
func NewOLA(id graph.ID, sliceLength, hop int) *OLA {
	o := &OLA{SliceLength: sliceLength, Hop: hop}
	o.BaseProcessor = graph.NewBaseProcessor(id, nil, o.equalSelf, o.string)
	return o
}

func (o *OLA) equalSelf(other graph.Processor) bool {
	oo, ok := other.(*OLA)
	return ok && o.SliceLength == oo.SliceLength && o.Hop == oo.Hop
}

func (o *OLA) string() string {
	return fmt.Sprintf("OLA{%ssliceLength=%d, hop=%d}", idPrefix(o.ID()), o.SliceLength, o.Hop)
}

// Process adds in's samples into the accumulation buffer at the current
// write cursor, advances the write cursor by Hop, and emits every output
// region that has become final as a result.
func (o *OLA) Process(in frame.Frame) error {
	r, ok := in.(frame.Real)
	if !ok {
		return &frame.FormatError{Op: "OLA.Process", Reason: "expected frame.Real input"}
	}
	if !o.seen {
		o.format = r.Format
		o.seen = true
	}
	needed := o.writeCursor + len(r.Samples)
	for len(o.acc) < needed {
		o.acc = append(o.acc, 0)
	}
	for i, v := range r.Samples {
		o.acc[o.writeCursor+i] += v
	}
	o.writeCursor += o.Hop
	return o.drain(o.writeCursor)
}

// drain emits every SliceLength-wide region starting at o.emitCursor whose
// end falls at or before finalized, i.e. no future write can still touch
// it.
func (o *OLA) drain(finalized int) error {
	for finalized >= o.emitCursor+o.SliceLength {
		emit := make([]float32, o.SliceLength)
		copy(emit, o.acc[o.emitCursor:o.emitCursor+o.SliceLength])
		out := frame.NewReal(o.base+int64(o.emitCursor), o.format, emit)
		o.emitCursor += o.SliceLength
		o.SetOutput(out)
		if err := o.FanOut().Process(out); err != nil {
			return err
		}
	}
	return nil
}

// ProcessChannel treats every channel as channel 0.
func (o *OLA) ProcessChannel(channel int, in frame.Frame) error { return o.Process(in) }

// Flush drains the remaining accumulator in SliceLength-sized, zero-padded
// chunks, then forwards flush downstream.
func (o *OLA) Flush() error {
	for o.emitCursor < len(o.acc) {
		emit := make([]float32, o.SliceLength)
		n := copy(emit, o.acc[o.emitCursor:])
		out := frame.NewReal(o.base+int64(o.emitCursor), o.format, emit)
		o.emitCursor += o.SliceLength
		_ = n
		o.SetOutput(out)
		if err := o.FanOut().Process(out); err != nil {
			return err
		}
	}
	return o.FanOut().Flush()
}

// Read is not supported: OLA's output cardinality per input is data
// dependent and its natural use is push-driven reconstruction, so pull
// mode is a programmer error, per spec.md §7's "process_next invoked where
// unsupported" category.
func (o *OLA) Read() (frame.Frame, error) {
	return nil, fmt.Errorf("graph: OLA does not support pull mode")
}
