// Package otosink implements a playback sink processor over
// github.com/hajimehoshi/oto/v2, adapted from the teacher's
// internal/audio/output.go (OtoOutput): the same oto.NewContext/NewPlayer
// wiring and an io.Reader-backed ring buffer feeding the player, but
// reshaped from a standalone playback-session type into a
// graph.Processor over frame.Real frames that can sit mid-graph (passing
// its input through unchanged) or terminate one, per SPEC_FULL.md §6.1.
package otosink

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

const bitDepth = 2 // 16-bit PCM, bytes per sample

// Sink is a graph.Processor that writes each frame.Real it receives to an
// oto.Player as 16-bit PCM, side-effecting playback, and forwards the same
// frame downstream unchanged so it can be inserted mid-pipeline.
type Sink struct {
	id     graph.ID
	fanOut *graph.FanOut
	output frame.Frame

	format  frame.AudioFormat
	context *oto.Context
	player  oto.Player
	buf     *bytes.Buffer
	mu      sync.Mutex
}

// New creates a Sink that plays back audio in format via oto.
func New(id graph.ID, format frame.AudioFormat) (*Sink, error) {
	ctx, ready, err := oto.NewContext(format.SampleRate, format.Channels, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("otosink: new context: %w", err)
	}
	<-ready
	s := &Sink{
		id:      id,
		fanOut:  graph.NewFanOut(),
		format:  format,
		context: ctx,
		buf:     &bytes.Buffer{},
	}
	s.player = ctx.NewPlayer(pcmReader{s})
	return s, nil
}

// pcmReader is the io.Reader the oto.Player pulls s's buffered PCM from.
// It is a separate type because Sink's own Read is graph.Processor's
// pull-mode Read.
type pcmReader struct{ s *Sink }

// Read implements io.Reader for the underlying oto.Player.
func (r pcmReader) Read(p []byte) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf.Len() == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	return s.buf.Read(p)
}

func (s *Sink) write(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		sample := int16(v * 32767)
		s.buf.WriteByte(byte(sample))
		s.buf.WriteByte(byte(sample >> 8))
	}
	if !s.player.IsPlaying() {
		s.player.Play()
	}
}

func (s *Sink) ID() graph.ID { return s.id }

// Process writes in's samples to the playback buffer and forwards in
// downstream unchanged.
func (s *Sink) Process(in frame.Frame) error {
	r, ok := in.(frame.Real)
	if !ok {
		return &frame.FormatError{Op: "otosink.Process", Reason: "expected frame.Real input"}
	}
	s.write(r.Samples)
	s.output = in
	return s.fanOut.Process(in)
}

// ProcessChannel treats every channel as channel 0.
func (s *Sink) ProcessChannel(channel int, in frame.Frame) error { return s.Process(in) }

// Flush forwards flush downstream; the oto player drains its buffer
// asynchronously on its own playback thread, so there is nothing further
// for Flush itself to wait on.
func (s *Sink) Flush() error {
	return s.fanOut.Flush()
}

// Read is unsupported: Sink is push-only, matching its role as a playback
// side effect rather than a pull-mode source of new data.
func (s *Sink) Read() (frame.Frame, error) {
	return nil, fmt.Errorf("otosink: Sink does not support pull mode")
}

func (s *Sink) ConnectTo(p graph.Processor) { s.fanOut.Connect(p) }
func (s *Sink) ConnectToChannel(ch int, p graph.Processor) { s.fanOut.ConnectChannel(ch, p) }
func (s *Sink) DisconnectFrom(p graph.Processor) { s.fanOut.Disconnect(p) }
func (s *Sink) ConnectedProcessors() []graph.Processor { return s.fanOut.Connected() }
func (s *Sink) ConnectedProcessorsChannel(ch int) []graph.Processor { return s.fanOut.ConnectedChannel(ch) }
func (s *Sink) Children() []graph.Processor { return s.fanOut.All() }
func (s *Sink) Output() frame.Frame { return s.output }

func (s *Sink) String() string {
	return fmt.Sprintf("OtoSink{sampleRate=%d, channels=%d}", s.format.SampleRate, s.format.Channels)
}

func (s *Sink) Equal(other graph.Processor) bool {
	o, ok := other.(*Sink)
	return ok && s.format == o.format
}

// Close releases the underlying oto player resources.
func (s *Sink) Close() error {
	return s.player.Close()
}
