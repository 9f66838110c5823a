package transform

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// InstantaneousFrequencyTransform derives a frame.InstantaneousFrequencySpectrum
// from each pair of consecutive frame.LinearSpectrum inputs, per spec.md
// §3.2. The first input frame establishes a baseline and emits nothing;
// from the second frame on, one instantaneous-frequency spectrum is
// emitted per input.
type InstantaneousFrequencyTransform struct {
	*graph.BaseProcessor

	prev frame.LinearSpectrum
	have bool
}

// NewInstantaneousFrequencyTransform constructs an
// InstantaneousFrequencyTransform.
func NewInstantaneousFrequencyTransform(id graph.ID) *InstantaneousFrequencyTransform {
	t := &InstantaneousFrequencyTransform{}
	t.BaseProcessor = graph.NewBaseProcessor(id, t.next, t.equalSelf, t.string)
	return t
}

func (t *InstantaneousFrequencyTransform) equalSelf(other graph.Processor) bool {
	_, ok := other.(*InstantaneousFrequencyTransform)
	return ok
}

func (t *InstantaneousFrequencyTransform) string() string {
	if id := t.ID(); id != nil {
		return fmt.Sprintf("InstantaneousFrequencyTransform{id=%v}", id)
	}
	return "InstantaneousFrequencyTransform{}"
}

func (t *InstantaneousFrequencyTransform) next(in frame.Frame) (frame.Frame, bool, error) {
	cur, ok := in.(frame.LinearSpectrum)
	if !ok {
		return nil, false, &frame.FormatError{Op: "InstantaneousFrequencyTransform", Reason: "expected frame.LinearSpectrum input"}
	}
	if !t.have {
		t.prev = cur
		t.have = true
		return nil, false, nil
	}
	out, err := frame.NewInstantaneousFrequencySpectrum(cur, t.prev)
	t.prev = cur
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
