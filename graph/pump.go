package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/austinkregel/jipes/source"
)

// Pump drives frames from a single signal source into a set of root
// processors, flushes them at end of stream, and harvests the outputs of
// every identified processor reachable from those roots.
//
// Per spec.md §4.15, Pump deduplicates structurally identical subgraphs
// before running: two roots built the same way, even independently, are
// merged so shared prefixes run (and are counted) only once.
type Pump struct {
	src   source.Source
	roots []Processor
}

// NewPump returns an empty Pump. Call SetSignalSource and Add before Pump.
func NewPump() *Pump { return &Pump{} }

// SetSignalSource sets (or replaces) the source this pump reads from.
func (p *Pump) SetSignalSource(s source.Source) { p.src = s }

// Add registers root as a root processor to drive frames into.
func (p *Pump) Add(root Processor) { p.roots = append(p.roots, root) }

// Roots returns a snapshot of the registered root processors, for
// best-effort caller-driven flush after a read error (see SPEC_FULL.md
// §7.2).
func (p *Pump) Roots() []Processor {
	out := make([]Processor, len(p.roots))
	copy(out, p.roots)
	return out
}

// Pump reads every frame from the signal source, pushes it into the
// deduplicated effective root set, and flushes that set once the source is
// exhausted. It returns a map from every non-nil processor ID reachable
// from the effective roots to that processor's last emitted output.
//
// If reading from the source fails for a reason other than
// source.ErrEndOfStream, Pump stops immediately without flushing any
// processor and returns the wrapped error: per spec.md §7's resolved
// open question, propagation errors abort the push loop rather than
// attempting a best-effort flush. Callers that want that behaviour can
// call Flush themselves on the processors returned by Roots.
func (p *Pump) Pump() (map[ID]any, error) {
	if p.src == nil {
		return nil, &ConfigError{Component: "Pump", Reason: "no source set"}
	}
	effective := computeEffective(p.roots)
	for {
		f, err := p.src.Read()
		if err != nil {
			if errors.Is(err, source.ErrEndOfStream) {
				break
			}
			return nil, fmt.Errorf("pump: read: %w", err)
		}
		for _, r := range effective {
			if err := r.Process(f); err != nil {
				return nil, fmt.Errorf("pump: process: %w", err)
			}
		}
	}
	for _, r := range effective {
		if err := r.Flush(); err != nil {
			return nil, fmt.Errorf("pump: flush: %w", err)
		}
	}
	return harvest(effective), nil
}

// computeEffective merges structurally identical root chains: for each
// root, if an already-accepted effective root is Equal to it, the new
// root's children are merged into the existing one (recursively); only
// roots that don't match anything already accepted become new effective
// roots. This reproduces spec.md §8's dedup scenario, where two chains
// sharing a Mono->Hamming prefix but diverging at their SlidingWindow leaf
// end up as one Mono->Hamming node fanning out to both sliding windows.
func computeEffective(roots []Processor) []Processor {
	var effective []Processor
	for _, r := range roots {
		merged := false
		for _, e := range effective {
			if e.Equal(r) {
				mergeInto(e, r)
				merged = true
				break
			}
		}
		if !merged {
			effective = append(effective, r)
		}
	}
	return effective
}

// mergeInto assumes target.Equal(candidate) already holds; it folds each of
// candidate's children into target, reusing target's existing children
// where they match and attaching the rest as new downstream connections.
func mergeInto(target, candidate Processor) {
	for _, c := range candidate.Children() {
		matched := false
		for _, t := range target.Children() {
			if t.Equal(c) {
				mergeInto(t, c)
				matched = true
				break
			}
		}
		if !matched {
			target.ConnectTo(c)
		}
	}
}

// harvest walks every processor reachable from roots exactly once and
// collects the output of every one whose ID is non-nil.
func harvest(roots []Processor) map[ID]any {
	seen := map[Processor]bool{}
	result := map[ID]any{}
	var walk func(p Processor)
	walk = func(p Processor) {
		if seen[p] {
			return
		}
		seen[p] = true
		if id := p.ID(); id != nil {
			result[id] = p.Output()
		}
		for _, c := range p.Children() {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return result
}

// GetDescription renders the deduplicated effective graph as an indented
// tree, one node per line, children indented two spaces under their
// parent. The format is stable within a build but not intended to be
// machine-parsed.
func (p *Pump) GetDescription() string {
	effective := computeEffective(p.roots)
	var sb strings.Builder
	seen := map[Processor]bool{}
	var walk func(p Processor, depth int)
	walk = func(p Processor, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(p.String())
		if seen[p] {
			sb.WriteString(" (seen)\n")
			return
		}
		sb.WriteString("\n")
		seen[p] = true
		for _, c := range p.Children() {
			walk(c, depth+1)
		}
	}
	for _, r := range effective {
		walk(r, 0)
	}
	return sb.String()
}
