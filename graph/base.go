package graph

import "github.com/austinkregel/jipes/frame"

// Reader is satisfied by both source.Source and Processor: anything a
// processor can pull its next input frame from.
type Reader interface {
	Read() (frame.Frame, error)
}

// ProcessNextFunc is the one piece of behaviour a stateless mapping node
// supplies: given one input frame, produce zero or one output frame. ok is
// false when the node has nothing to emit for this input (e.g. it is still
// accumulating).
//
// BaseProcessor composes this function with fan-out/read bookkeeping
// rather than requiring every node to reimplement Process/Read itself
// (spec.md §9's "push/pull unification" note); nodes with a richer
// push/pull shape (SlidingWindow, OLA, the accumulators) embed BaseProcessor
// for its ID/fan-out/Output bookkeeping but shadow Process, Flush and Read
// with their own implementations.
type ProcessNextFunc func(in frame.Frame) (out frame.Frame, ok bool, err error)

// BaseProcessor is the default Processor implementation for single-input,
// single-output, stateless-per-call nodes: it forwards to a ProcessNextFunc
// and fans the result out to connected downstream processors.
type BaseProcessor struct {
	id       ID
	fanOut   *FanOut
	output   frame.Frame
	upstream Reader
	next     ProcessNextFunc
	selfEq   func(other Processor) bool
	str      func() string
}

// NewBaseProcessor constructs a BaseProcessor. next implements the node's
// per-frame transform; selfEq and str implement Equal/String for the
// concrete node (typically comparing/printing the node's own construction
// parameters).
func NewBaseProcessor(id ID, next ProcessNextFunc, selfEq func(Processor) bool, str func() string) *BaseProcessor {
	return &BaseProcessor{
		id:     id,
		fanOut: NewFanOut(),
		next:   next,
		selfEq: selfEq,
		str:    str,
	}
}

// SetUpstream wires the Reader this processor pulls from in pull mode.
func (b *BaseProcessor) SetUpstream(r Reader) { b.upstream = r }

// ReadUpstream pulls the next frame from the wired upstream Reader. Nodes
// that shadow Read with custom buffering logic use this instead of calling
// their own Read recursively.
func (b *BaseProcessor) ReadUpstream() (frame.Frame, error) { return b.upstream.Read() }

// SetOutput caches fr as the last frame this processor emitted. Nodes that
// shadow Process/Read call this themselves since BaseProcessor's own
// Process/Read aren't in play.
func (b *BaseProcessor) SetOutput(fr frame.Frame) { b.output = fr }

// ID returns the processor's opaque identity.
func (b *BaseProcessor) ID() ID { return b.id }

// Output returns the last frame this processor emitted.
func (b *BaseProcessor) Output() frame.Frame { return b.output }

// FanOut exposes the underlying fan-out helper for nodes that shadow
// Process/Flush but still want to forward through the same connections.
func (b *BaseProcessor) FanOut() *FanOut { return b.fanOut }

func (b *BaseProcessor) ConnectTo(p Processor)        { b.fanOut.Connect(p) }
func (b *BaseProcessor) ConnectToChannel(ch int, p Processor) { b.fanOut.ConnectChannel(ch, p) }
func (b *BaseProcessor) DisconnectFrom(p Processor)   { b.fanOut.Disconnect(p) }
func (b *BaseProcessor) ConnectedProcessors() []Processor { return b.fanOut.Connected() }
func (b *BaseProcessor) ConnectedProcessorsChannel(ch int) []Processor {
	return b.fanOut.ConnectedChannel(ch)
}
func (b *BaseProcessor) Children() []Processor { return b.fanOut.All() }

// Process runs next on in and, if it emitted a frame, caches it as Output
// and forwards it to every downstream processor.
func (b *BaseProcessor) Process(in frame.Frame) error {
	out, ok, err := b.next(in)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	b.output = out
	return b.fanOut.Process(out)
}

// ProcessChannel treats every channel as channel 0: most framing nodes
// don't distinguish input channels, only output routing (see
// InterleavedChannelSplit for a node that does override this).
func (b *BaseProcessor) ProcessChannel(channel int, in frame.Frame) error {
	return b.Process(in)
}

// Flush forwards flush to every downstream processor. Stateless nodes have
// no residue of their own to emit.
func (b *BaseProcessor) Flush() error { return b.fanOut.Flush() }

// Read pulls one frame from upstream, transforms it, caches and returns the
// result. Nodes that must pull more than once (or zero times) per emitted
// output override Read entirely.
func (b *BaseProcessor) Read() (frame.Frame, error) {
	in, err := b.upstream.Read()
	if err != nil {
		return nil, err
	}
	out, ok, err := b.next(in)
	if err != nil {
		return nil, err
	}
	if !ok {
		return b.Read()
	}
	b.output = out
	return out, nil
}

// String renders the node's deterministic textual representation.
func (b *BaseProcessor) String() string { return b.str() }

// Equal reports whether other is the same kind of node with the same
// construction parameters.
func (b *BaseProcessor) Equal(other Processor) bool { return b.selfEq(other) }
