// Package livesource implements source.Source over a live microphone
// capture stream via github.com/gordonklaus/portaudio, grounded in the
// pack repo rayboyd-audio-engine's portaudio.OpenStream/callback pattern
// (internal/audio engine.go), per SPEC_FULL.md §1.2/§6.1.
package livesource

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/source"
)

// Source captures audio from the default input device into
// FramesPerBuffer-sized frame.Real frames, delivered through an internal
// channel fed by portaudio's realtime callback.
type Source struct {
	stream          *portaudio.Stream
	format          frame.AudioFormat
	framesPerBuffer int
	frameIdx        int64

	buf    []float32
	frames chan []float32
	closed bool
}

// Open starts capturing from the default input device at the given sample
// rate and channel count, framesPerBuffer samples per channel per
// callback. Call Read to pull captured frames and Close to stop the
// stream.
func Open(sampleRate, channels, framesPerBuffer int) (*Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("livesource: portaudio init: %w", err)
	}
	s := &Source{
		format:          frame.AudioFormat{SampleRate: sampleRate, Channels: channels, Signed: true},
		framesPerBuffer: framesPerBuffer,
		buf:             make([]float32, framesPerBuffer*channels),
		frames:          make(chan []float32, 8),
	}
	stream, err := portaudio.OpenDefaultStream(channels, 0, float64(sampleRate), framesPerBuffer, s.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("livesource: open stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("livesource: start stream: %w", err)
	}
	return s, nil
}

// callback is invoked by portaudio on its own realtime thread; it copies
// the captured buffer and hands it off through the channel rather than
// doing any processing itself (the processing happens in Read, on the
// caller's thread, matching spec.md §5's single-threaded-per-graph rule).
func (s *Source) callback(in []float32) {
	cp := make([]float32, len(in))
	copy(cp, in)
	select {
	case s.frames <- cp:
	default: // drop the buffer rather than block the realtime callback
	}
}

// Read blocks until the next captured buffer is available and returns it
// as a frame.Real frame, or source.ErrEndOfStream once the stream has been
// closed and no more buffers are pending.
func (s *Source) Read() (frame.Frame, error) {
	buf, ok := <-s.frames
	if !ok {
		return nil, source.ErrEndOfStream
	}
	out := frame.NewReal(s.frameIdx, s.format, buf)
	s.frameIdx += int64(s.framesPerBuffer)
	return out, nil
}

// Reset is a no-op: a live capture stream has no rewindable position.
func (s *Source) Reset() error { return nil }

// Close stops and terminates the capture stream. A second call reports
// source.ErrAlreadyClosed.
func (s *Source) Close() error {
	if s.closed {
		return source.ErrAlreadyClosed
	}
	s.closed = true
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("livesource: stop stream: %w", err)
	}
	close(s.frames) // safe once Stop has guaranteed the callback won't fire again
	if err := s.stream.Close(); err != nil {
		portaudio.Terminate()
		return fmt.Errorf("livesource: close stream: %w", err)
	}
	return portaudio.Terminate()
}
