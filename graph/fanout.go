package graph

import (
	"sort"

	"github.com/austinkregel/jipes/frame"
)

// FanOut is the connect/disconnect/forward bookkeeping shared by every
// processor. It is deliberately a small composable helper rather than a
// base class every node must inherit from (spec.md §9's "fan-out without
// inheritance" note): a node holds a *FanOut (BaseProcessor carries one
// for it) and delegates the
// ConnectTo/Process-forwarding half of the Processor interface to it.
//
// The graph is single-threaded (SPEC_FULL.md §5), so FanOut holds no lock.
type FanOut struct {
	unkeyed  []Processor
	channels map[int][]Processor
}

// NewFanOut returns an empty FanOut.
func NewFanOut() *FanOut {
	return &FanOut{channels: map[int][]Processor{}}
}

// Connect appends p to the unkeyed fan-out list.
func (f *FanOut) Connect(p Processor) {
	f.unkeyed = append(f.unkeyed, p)
}

// ConnectChannel appends p to the fan-out list for channel.
func (f *FanOut) ConnectChannel(channel int, p Processor) {
	f.channels[channel] = append(f.channels[channel], p)
}

// Disconnect removes p from every fan-out list it appears in.
func (f *FanOut) Disconnect(p Processor) {
	f.unkeyed = removeProcessor(f.unkeyed, p)
	for ch, list := range f.channels {
		f.channels[ch] = removeProcessor(list, p)
	}
}

func removeProcessor(list []Processor, target Processor) []Processor {
	out := list[:0:0]
	for _, p := range list {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// Connected returns a snapshot of the unkeyed fan-out list, in connection
// order.
func (f *FanOut) Connected() []Processor {
	out := make([]Processor, len(f.unkeyed))
	copy(out, f.unkeyed)
	return out
}

// ConnectedChannel returns a snapshot of the fan-out list for channel, in
// connection order.
func (f *FanOut) ConnectedChannel(channel int) []Processor {
	list := f.channels[channel]
	out := make([]Processor, len(list))
	copy(out, list)
	return out
}

// All returns every downstream processor, unkeyed list first followed by
// each channel's list in ascending channel order, for graph-walking
// purposes. A processor connected through more than one list appears more
// than once; callers that walk the full graph (Pump) track visited nodes
// themselves.
func (f *FanOut) All() []Processor {
	out := make([]Processor, 0, len(f.unkeyed))
	out = append(out, f.unkeyed...)
	channels := make([]int, 0, len(f.channels))
	for ch := range f.channels {
		channels = append(channels, ch)
	}
	sort.Ints(channels)
	for _, ch := range channels {
		out = append(out, f.channels[ch]...)
	}
	return out
}

// Process forwards fr to every processor on the unkeyed list, in
// connection order, stopping and returning the first error encountered.
// Per spec.md §4.3, a downstream failure is never silently swallowed.
func (f *FanOut) Process(fr frame.Frame) error {
	for _, p := range f.unkeyed {
		if err := p.Process(fr); err != nil {
			return err
		}
	}
	return nil
}

// ProcessChannel forwards fr to the fan-out list for channel. If channel 0
// has no keyed list, it falls back to the unkeyed list, so a node that
// never calls ConnectToChannel still works when driven with
// ProcessChannel(0, ...).
func (f *FanOut) ProcessChannel(channel int, fr frame.Frame) error {
	list, ok := f.channels[channel]
	if !ok || len(list) == 0 {
		if channel == 0 {
			return f.Process(fr)
		}
		return nil
	}
	for _, p := range list {
		if err := p.ProcessChannel(channel, fr); err != nil {
			return err
		}
	}
	return nil
}

// Flush forwards flush to every downstream processor exactly once.
// A processor connected through more than one list is flushed only where
// All first lists it.
func (f *FanOut) Flush() error {
	flushed := map[Processor]bool{}
	for _, p := range f.All() {
		if flushed[p] {
			continue
		}
		flushed[p] = true
		if err := p.Flush(); err != nil {
			return err
		}
	}
	return nil
}
