package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// AggregateFunc combines one frame per part, in connection order, into a
// single output frame.
type AggregateFunc func(parts []frame.Frame) (frame.Frame, error)

// JoinByAggregation collects one input frame per part from upstreams wired
// to it as if they were independent pipelines, and once every part for a
// tick has arrived, combines them with an injected AggregateFunc, per
// spec.md §4.10. Unlike InterleavedChannelJoin (which always interleaves
// samples), the combination rule here is supplied by the caller, so this
// node can express sums, concatenations, or any other per-tick reduction
// over its upstreams.
type JoinByAggregation struct {
	*graph.BaseProcessor
	Parts     int
	Aggregate AggregateFunc

	pending map[int]frame.Frame
}

// NewJoinByAggregation constructs a JoinByAggregation expecting Parts
// upstream inputs per tick, combined by aggregate. parts must be at least
// 1 and aggregate must not be nil, else a *graph.ConfigError is returned.
func NewJoinByAggregation(id graph.ID, parts int, aggregate AggregateFunc) (*JoinByAggregation, error) {
	if parts < 1 {
		return nil, &graph.ConfigError{Component: "JoinByAggregation", Reason: "parts must be at least 1"}
	}
	if aggregate == nil {
		return nil, &graph.ConfigError{Component: "JoinByAggregation", Reason: "aggregate function must not be nil"}
	}
	j := &JoinByAggregation{Parts: parts, Aggregate: aggregate, pending: map[int]frame.Frame{}}
	j.BaseProcessor = graph.NewBaseProcessor(id, nil, j.equalSelf, j.string)
	return j, nil
}

func (j *JoinByAggregation) equalSelf(other graph.Processor) bool {
	o, ok := other.(*JoinByAggregation)
	return ok && j.Parts == o.Parts
}

func (j *JoinByAggregation) string() string {
	return fmt.Sprintf("JoinByAggregation{%sparts=%d}", idPrefix(j.ID()), j.Parts)
}

// Process treats an unkeyed push as part 0.
func (j *JoinByAggregation) Process(in frame.Frame) error {
	return j.ProcessChannel(0, in)
}

// ProcessChannel buffers in as the given part's frame for the current tick;
// once every part in [0, Parts) has a buffered frame, Aggregate is invoked
// with them in part order and the result is forwarded downstream.
func (j *JoinByAggregation) ProcessChannel(channel int, in frame.Frame) error {
	j.pending[channel] = in
	if len(j.pending) < j.Parts {
		return nil
	}
	parts := make([]frame.Frame, j.Parts)
	for ch := 0; ch < j.Parts; ch++ {
		part, ok := j.pending[ch]
		if !ok {
			return nil // a filled slot outside [0,Parts) doesn't make a full tick
		}
		parts[ch] = part
	}
	out, err := j.Aggregate(parts)
	if err != nil {
		return err
	}
	j.pending = map[int]frame.Frame{}
	j.SetOutput(out)
	return j.FanOut().Process(out)
}

// Flush forwards flush downstream without emitting a partial tick, even if
// one is pending, per spec.md §4.10.
func (j *JoinByAggregation) Flush() error {
	j.pending = map[int]frame.Frame{}
	return j.FanOut().Flush()
}
