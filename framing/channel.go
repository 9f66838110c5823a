package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// ChannelSelector extracts a single channel from an interleaved
// multi-channel frame.Real frame, per spec.md §4.7.
type ChannelSelector struct {
	*graph.BaseProcessor
	Channel int
}

// NewChannelSelector constructs a ChannelSelector for the given
// zero-based channel index.
func NewChannelSelector(id graph.ID, channel int) *ChannelSelector {
	c := &ChannelSelector{Channel: channel}
	c.BaseProcessor = graph.NewBaseProcessor(id, c.next, c.equalSelf, c.string)
	return c
}

func (c *ChannelSelector) equalSelf(other graph.Processor) bool {
	o, ok := other.(*ChannelSelector)
	return ok && c.Channel == o.Channel
}

func (c *ChannelSelector) string() string {
	return fmt.Sprintf("ChannelSelector{%schannel=%d}", idPrefix(c.ID()), c.Channel)
}

func (c *ChannelSelector) next(in frame.Frame) (frame.Frame, bool, error) {
	r, ok := in.(frame.Real)
	if !ok {
		return nil, false, &frame.FormatError{Op: "ChannelSelector", Reason: "expected frame.Real input"}
	}
	n := r.Format.Channels
	if n <= 0 {
		n = 1
	}
	if c.Channel >= n {
		return nil, false, &frame.FormatError{Op: "ChannelSelector", Reason: "channel index out of range for frame's channel count"}
	}
	out := make([]float32, 0, len(r.Samples)/n)
	for i := c.Channel; i < len(r.Samples); i += n {
		out = append(out, r.Samples[i])
	}
	mono := r.Format
	mono.Channels = 1
	return frame.NewReal(r.FrameIndex, mono, out), true, nil
}

// Mono averages every channel of an interleaved multi-channel frame.Real
// frame sample by sample, per spec.md §4.7. Mono(Stereo([10,20,10,20,...]))
// == [15,15,...] is the round-trip law spec.md §8 names.
type Mono struct {
	*graph.BaseProcessor
}

// NewMono constructs a Mono downmixing processor.
func NewMono(id graph.ID) *Mono {
	m := &Mono{}
	m.BaseProcessor = graph.NewBaseProcessor(id, m.next, m.equalSelf, m.string)
	return m
}

func (m *Mono) equalSelf(other graph.Processor) bool {
	_, ok := other.(*Mono)
	return ok
}

func (m *Mono) string() string {
	if id := m.ID(); id != nil {
		return fmt.Sprintf("Mono{id=%v}", id)
	}
	return "Mono{}"
}

func (m *Mono) next(in frame.Frame) (frame.Frame, bool, error) {
	r, ok := in.(frame.Real)
	if !ok {
		return nil, false, &frame.FormatError{Op: "Mono", Reason: "expected frame.Real input"}
	}
	n := r.Format.Channels
	if n <= 1 {
		mono := r.Format
		mono.Channels = 1
		return frame.NewReal(r.FrameIndex, mono, append([]float32(nil), r.Samples...)), true, nil
	}
	frames := len(r.Samples) / n
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < n; ch++ {
			sum += r.Samples[i*n+ch]
		}
		out[i] = sum / float32(n)
	}
	mono := r.Format
	mono.Channels = 1
	return frame.NewReal(r.FrameIndex, mono, out), true, nil
}
