package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// InterleavedChannelSplit de-interleaves a multi-channel frame.Real frame
// into Parts single-channel frames, routing channel i to the downstream
// processors connected on channel i, per spec.md §4.8.
type InterleavedChannelSplit struct {
	*graph.BaseProcessor
	Parts int
}

// NewInterleavedChannelSplit constructs an InterleavedChannelSplit for the
// given number of channels.
func NewInterleavedChannelSplit(id graph.ID, parts int) *InterleavedChannelSplit {
	s := &InterleavedChannelSplit{Parts: parts}
	s.BaseProcessor = graph.NewBaseProcessor(id, nil, s.equalSelf, s.string)
	return s
}

func (s *InterleavedChannelSplit) equalSelf(other graph.Processor) bool {
	o, ok := other.(*InterleavedChannelSplit)
	return ok && s.Parts == o.Parts
}

func (s *InterleavedChannelSplit) string() string {
	return fmt.Sprintf("InterleavedChannelSplit{%sparts=%d}", idPrefix(s.ID()), s.Parts)
}

// Process de-interleaves in and forwards channel i to the fan-out list
// connected on channel i.
func (s *InterleavedChannelSplit) Process(in frame.Frame) error {
	r, ok := in.(frame.Real)
	if !ok {
		return &frame.FormatError{Op: "InterleavedChannelSplit.Process", Reason: "expected frame.Real input"}
	}
	parts := make([][]float32, s.Parts)
	for ch := range parts {
		parts[ch] = make([]float32, 0, len(r.Samples)/s.Parts)
	}
	for i, v := range r.Samples {
		ch := i % s.Parts
		parts[ch] = append(parts[ch], v)
	}
	mono := r.Format
	mono.Channels = 1
	for ch, samples := range parts {
		out := frame.NewReal(r.FrameIndex, mono, samples)
		s.SetOutput(out)
		if err := s.FanOut().ProcessChannel(ch, out); err != nil {
			return err
		}
	}
	return nil
}

// ProcessChannel ignores the incoming channel key: split always reads a
// single interleaved input regardless of which channel it's nominally
// pushed on.
func (s *InterleavedChannelSplit) ProcessChannel(channel int, in frame.Frame) error {
	return s.Process(in)
}

// InterleavedChannelJoin buffers one single-channel frame per part until
// every part has arrived for the current slot, then interleaves them back
// into one multi-channel frame.Real frame, per spec.md §4.8. Flush forwards
// downstream but never emits a partially filled slot.
type InterleavedChannelJoin struct {
	*graph.BaseProcessor
	Parts int

	pending map[int]frame.Real
}

// NewInterleavedChannelJoin constructs an InterleavedChannelJoin expecting
// Parts input channels.
func NewInterleavedChannelJoin(id graph.ID, parts int) *InterleavedChannelJoin {
	j := &InterleavedChannelJoin{Parts: parts, pending: map[int]frame.Real{}}
	j.BaseProcessor = graph.NewBaseProcessor(id, nil, j.equalSelf, j.string)
	return j
}

func (j *InterleavedChannelJoin) equalSelf(other graph.Processor) bool {
	o, ok := other.(*InterleavedChannelJoin)
	return ok && j.Parts == o.Parts
}

func (j *InterleavedChannelJoin) string() string {
	return fmt.Sprintf("InterleavedChannelJoin{%sparts=%d}", idPrefix(j.ID()), j.Parts)
}

// Process treats an unkeyed push as channel 0.
func (j *InterleavedChannelJoin) Process(in frame.Frame) error {
	return j.ProcessChannel(0, in)
}

// ProcessChannel buffers in as the given channel's frame for the current
// slot; once every channel in [0, Parts) has a buffered frame, they are
// interleaved and emitted as one frame, and the buffer is cleared.
func (j *InterleavedChannelJoin) ProcessChannel(channel int, in frame.Frame) error {
	r, ok := in.(frame.Real)
	if !ok {
		return &frame.FormatError{Op: "InterleavedChannelJoin.ProcessChannel", Reason: "expected frame.Real input"}
	}
	j.pending[channel] = r
	if len(j.pending) < j.Parts {
		return nil
	}
	length := -1
	for ch := 0; ch < j.Parts; ch++ {
		part, ok := j.pending[ch]
		if !ok {
			return nil // missing a channel index outside [0,Parts); not a full slot yet
		}
		if length == -1 {
			length = len(part.Samples)
		} else if len(part.Samples) != length {
			return &frame.FormatError{Op: "InterleavedChannelJoin.ProcessChannel", Reason: "parts have mismatched sample counts"}
		}
	}
	out := make([]float32, length*j.Parts)
	for ch := 0; ch < j.Parts; ch++ {
		part := j.pending[ch]
		for i, v := range part.Samples {
			out[i*j.Parts+ch] = v
		}
	}
	format := j.pending[0].Format
	format.Channels = j.Parts
	joined := frame.NewReal(j.pending[0].FrameIndex, format, out)
	j.pending = map[int]frame.Real{}
	j.SetOutput(joined)
	return j.FanOut().Process(joined)
}

// Flush forwards flush downstream without emitting a partial slot, even if
// one is pending.
func (j *InterleavedChannelJoin) Flush() error {
	j.pending = map[int]frame.Real{}
	return j.FanOut().Flush()
}
