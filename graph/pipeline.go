package graph

import (
	"fmt"
	"strings"

	"github.com/austinkregel/jipes/frame"
)

// Pipeline wraps a straight (1-in/1-out, no interior branching) chain of
// processors as a single Processor node, per spec.md §4.14. It validates
// the chain at construction time and forwards process/flush to the first
// node, output/id to the last.
type Pipeline struct {
	chain []Processor
}

// NewPipeline validates that, starting from first, each processor has
// exactly one unkeyed downstream connection and no channel-keyed
// connections until last is reached, and that last has no further
// downstream connections recorded in the chain itself (it may still fan out
// beyond the pipeline). It returns a ConfigError if the chain branches or
// never reaches last.
func NewPipeline(first, last Processor) (*Pipeline, error) {
	chain := []Processor{first}
	cur := first
	for cur != last {
		children := cur.Children()
		if len(children) != 1 || len(cur.ConnectedProcessors()) != 1 {
			return nil, &ConfigError{Component: "Pipeline", Reason: fmt.Sprintf("node %q has %d downstream connections, pipeline requires exactly 1 unkeyed and no channel-keyed connection", cur.String(), len(children))}
		}
		cur = children[0]
		chain = append(chain, cur)
	}
	return &Pipeline{chain: chain}, nil
}

func (p *Pipeline) first() Processor { return p.chain[0] }
func (p *Pipeline) last() Processor  { return p.chain[len(p.chain)-1] }

// ID returns the last node's id.
func (p *Pipeline) ID() ID { return p.last().ID() }

// Process pushes in into the first node; the chain handles forwarding
// internally via its own fan-out wiring.
func (p *Pipeline) Process(in frame.Frame) error { return p.first().Process(in) }

// ProcessChannel pushes in into the first node's named channel.
func (p *Pipeline) ProcessChannel(channel int, in frame.Frame) error {
	return p.first().ProcessChannel(channel, in)
}

// Flush flushes the first node, which cascades through the chain.
func (p *Pipeline) Flush() error { return p.first().Flush() }

// Read pulls from the last node, which recursively pulls upstream through
// the chain.
func (p *Pipeline) Read() (frame.Frame, error) { return p.last().Read() }

// ConnectTo wires downstream after the last node in the chain.
func (p *Pipeline) ConnectTo(downstream Processor) { p.last().ConnectTo(downstream) }

// ConnectToChannel wires downstream after the last node, on a channel.
func (p *Pipeline) ConnectToChannel(channel int, downstream Processor) {
	p.last().ConnectToChannel(channel, downstream)
}

// DisconnectFrom removes downstream from the last node's fan-out.
func (p *Pipeline) DisconnectFrom(downstream Processor) { p.last().DisconnectFrom(downstream) }

// ConnectedProcessors returns the last node's unkeyed fan-out list.
func (p *Pipeline) ConnectedProcessors() []Processor { return p.last().ConnectedProcessors() }

// ConnectedProcessorsChannel returns the last node's fan-out list for channel.
func (p *Pipeline) ConnectedProcessorsChannel(channel int) []Processor {
	return p.last().ConnectedProcessorsChannel(channel)
}

// Children returns the last node's downstream processors, for graph walks.
func (p *Pipeline) Children() []Processor { return p.last().Children() }

// Output returns the last node's last emitted frame.
func (p *Pipeline) Output() frame.Frame { return p.last().Output() }

// GetProcessorWithID walks the wrapped chain looking for a node whose ID
// equals id.
func (p *Pipeline) GetProcessorWithID(id ID) (Processor, bool) {
	for _, n := range p.chain {
		if n.ID() == id {
			return n, true
		}
	}
	return nil, false
}

// String renders the chain as "first -> ... -> last".
func (p *Pipeline) String() string {
	names := make([]string, len(p.chain))
	for i, n := range p.chain {
		names[i] = n.String()
	}
	return "Pipeline{" + strings.Join(names, " -> ") + "}"
}

// Equal reports whether other is a Pipeline wrapping a chain of the same
// length whose nodes are pairwise Equal.
func (p *Pipeline) Equal(other Processor) bool {
	o, ok := other.(*Pipeline)
	if !ok || len(o.chain) != len(p.chain) {
		return false
	}
	for i := range p.chain {
		if !p.chain[i].Equal(o.chain[i]) {
			return false
		}
	}
	return true
}
