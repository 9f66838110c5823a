// Package graph implements the signal-processing graph runtime: processor
// nodes, their fan-out wiring, and the pump that drives frames through a
// graph from a source to its roots. The graph is single-threaded and
// synchronous throughout; see SPEC_FULL.md §5 for the concurrency model
// this package assumes.
package graph

import "github.com/austinkregel/jipes/frame"

// ID is an opaque, comparable handle a caller attaches to a processor so a
// Pump run can harvest its output by name. A nil ID means "don't harvest
// this node" and is the default for processors constructed without one.
type ID = any

// Processor is the capability every graph node exposes: it can be pushed a
// frame, flushed, pulled from, wired to downstream processors, and
// identified/printed/compared for the pump's deduplication pass.
//
// Processor is intentionally non-generic: frame.Frame is itself the
// dynamic-dispatch boundary (see SPEC_FULL.md §9), so a single interface
// covers every node regardless of the concrete input/output frame types it
// happens to convert between. Format mismatches (a mono-only transform fed
// a stereo frame) are reported as runtime errors from Process, not caught
// at compile time.
type Processor interface {
	// ID returns the opaque identity this processor was constructed with,
	// or nil if none was given.
	ID() ID

	// Process pushes a frame into channel 0.
	Process(in frame.Frame) error
	// ProcessChannel pushes a frame into the named channel. Processors
	// that don't distinguish channels treat every channel as channel 0.
	ProcessChannel(channel int, in frame.Frame) error
	// Flush signals end of stream: the processor must emit any buffered
	// residue and forward flush to its own downstream processors exactly
	// once.
	Flush() error

	// Read pulls the next output frame, reading upstream as needed. It
	// returns source.ErrEndOfStream (via the upstream source or
	// processor) when exhausted.
	Read() (frame.Frame, error)

	// ConnectTo adds downstream to this processor's unkeyed fan-out list.
	ConnectTo(downstream Processor)
	// ConnectToChannel adds downstream to the fan-out list for the named
	// channel.
	ConnectToChannel(channel int, downstream Processor)
	// DisconnectFrom removes downstream from every fan-out list it
	// appears in.
	DisconnectFrom(downstream Processor)
	// ConnectedProcessors returns the unkeyed fan-out list, in connection
	// order.
	ConnectedProcessors() []Processor
	// ConnectedProcessorsChannel returns the fan-out list for the named
	// channel, in connection order.
	ConnectedProcessorsChannel(channel int) []Processor
	// Children returns every downstream processor reachable from this
	// node, unkeyed and channel-keyed alike, for graph-walking purposes
	// (pump deduplication, description rendering).
	Children() []Processor

	// Output returns the last frame this processor emitted.
	Output() frame.Frame

	// String returns this processor's deterministic textual
	// representation, including every parameter that participates in
	// Equal.
	String() string
	// Equal reports whether other is the same kind of processor with the
	// same construction parameters. It does not compare downstream
	// wiring; Pump uses it together with Children to merge structurally
	// identical prefixes (see SPEC_FULL.md §4.15).
	Equal(other Processor) bool
}
