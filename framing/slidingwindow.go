package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// SlidingWindow re-slices a stream of frame.Real frames into fixed-length,
// possibly overlapping slices: SliceLength samples per slice, advancing the
// window by Hop samples between slices. Per spec.md §4.4, Flush emits a
// single zero-padded trailing slice if any unconsumed samples remain, or
// nothing if the buffer divided evenly.
type SlidingWindow struct {
	*graph.BaseProcessor
	SliceLength int
	Hop         int

	buf    []float32
	base   int64 // absolute sample index of buf[0]
	cursor int   // index within buf of the next slice's start
	format frame.AudioFormat
	seen   bool
}

// NewSlidingWindow constructs a SlidingWindow. sliceLength and hop must
// both be positive.
func NewSlidingWindow(id graph.ID, sliceLength, hop int) *SlidingWindow {
	sw := &SlidingWindow{SliceLength: sliceLength, Hop: hop}
	sw.BaseProcessor = graph.NewBaseProcessor(id, nil, sw.equalSelf, sw.string)
	return sw
}

func (s *SlidingWindow) equalSelf(other graph.Processor) bool {
	o, ok := other.(*SlidingWindow)
	return ok && s.SliceLength == o.SliceLength && s.Hop == o.Hop
}

func (s *SlidingWindow) string() string {
	return fmt.Sprintf("SlidingWindow{%ssliceLength=%d, hop=%d}", idPrefix(s.ID()), s.SliceLength, s.Hop)
}

// Process appends in's samples to the internal buffer and emits every full
// slice the new data makes available.
func (s *SlidingWindow) Process(in frame.Frame) error {
	r, ok := in.(frame.Real)
	if !ok {
		return &frame.FormatError{Op: "SlidingWindow.Process", Reason: "expected frame.Real input"}
	}
	if !s.seen {
		s.format = r.Format
		s.seen = true
	}
	s.buf = append(s.buf, r.Samples...)
	return s.emitReady()
}

// ProcessChannel treats every channel as channel 0.
func (s *SlidingWindow) ProcessChannel(channel int, in frame.Frame) error {
	return s.Process(in)
}

func (s *SlidingWindow) emitReady() error {
	for s.cursor+s.SliceLength <= len(s.buf) {
		slice := make([]float32, s.SliceLength)
		copy(slice, s.buf[s.cursor:s.cursor+s.SliceLength])
		idx := s.base + int64(s.cursor)
		out := frame.NewReal(idx, s.format, slice)
		s.SetOutput(out)
		if err := s.FanOut().Process(out); err != nil {
			return err
		}
		s.cursor += s.Hop
	}
	s.compact()
	return nil
}

// compact drops buffered samples before the current cursor that no future
// slice can reference, keeping the buffer from growing without bound.
func (s *SlidingWindow) compact() {
	if s.cursor == 0 {
		return
	}
	s.buf = append([]float32(nil), s.buf[s.cursor:]...)
	s.base += int64(s.cursor)
	s.cursor = 0
}

// Flush emits one zero-padded trailing slice if any unconsumed samples
// remain, then forwards flush downstream.
func (s *SlidingWindow) Flush() error {
	if s.cursor < len(s.buf) {
		tail := s.buf[s.cursor:]
		slice := make([]float32, s.SliceLength)
		copy(slice, tail)
		idx := s.base + int64(s.cursor)
		out := frame.NewReal(idx, s.format, slice)
		s.SetOutput(out)
		if err := s.FanOut().Process(out); err != nil {
			return err
		}
		s.cursor = len(s.buf)
	}
	return s.FanOut().Flush()
}

// Read pulls from upstream until one full slice is available, then returns
// it (pull mode never zero-pads; that's a push/flush-only behaviour).
func (s *SlidingWindow) Read() (frame.Frame, error) {
	for s.cursor+s.SliceLength > len(s.buf) {
		in, err := s.ReadUpstream()
		if err != nil {
			return nil, err
		}
		r, ok := in.(frame.Real)
		if !ok {
			return nil, &frame.FormatError{Op: "SlidingWindow.Read", Reason: "expected frame.Real input"}
		}
		if !s.seen {
			s.format = r.Format
			s.seen = true
		}
		s.buf = append(s.buf, r.Samples...)
	}
	slice := make([]float32, s.SliceLength)
	copy(slice, s.buf[s.cursor:s.cursor+s.SliceLength])
	idx := s.base + int64(s.cursor)
	out := frame.NewReal(idx, s.format, slice)
	s.cursor += s.Hop
	s.compact()
	s.SetOutput(out)
	return out, nil
}
