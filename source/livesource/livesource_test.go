package livesource

import (
	"testing"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/source"
)

// Open (and Close) talk directly to the portaudio device driver and aren't
// exercisable in a test environment without real audio hardware. callback
// and Read, though, are pure buffer/channel plumbing independent of
// portaudio itself, so they're built and tested directly against a Source
// value that never touches portaudio.Initialize/OpenDefaultStream.

func newTestSource(framesPerBuffer, channels int) *Source {
	return &Source{
		format:          frame.AudioFormat{SampleRate: 8000, Channels: channels, Signed: true},
		framesPerBuffer: framesPerBuffer,
		buf:             make([]float32, framesPerBuffer*channels),
		frames:          make(chan []float32, 8),
	}
}

func TestCallbackCopiesBufferRatherThanAliasingIt(t *testing.T) {
	s := newTestSource(4, 1)
	in := []float32{1, 2, 3, 4}
	s.callback(in)
	in[0] = 999 // mutate the caller's buffer after handing it off

	f, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	r := f.(frame.Real)
	if r.Samples[0] != 1 {
		t.Errorf("Read() picked up a post-callback mutation: got %v, want the value at callback time (1)", r.Samples[0])
	}
}

func TestCallbackDropsBuffersWhenChannelIsFull(t *testing.T) {
	s := newTestSource(2, 1)
	s.frames = make(chan []float32) // unbuffered: any send blocks unless drained
	s.callback([]float32{1, 2})     // must not block the realtime callback
	select {
	case <-s.frames:
		t.Fatal("expected the buffer to be dropped, not delivered, when nothing is draining the channel")
	default:
	}
}

func TestReadAssignsIncrementingFrameIndices(t *testing.T) {
	s := newTestSource(4, 1)
	s.callback([]float32{1, 2, 3, 4})
	s.callback([]float32{5, 6, 7, 8})

	f1, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	f2, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if f1.Head().FrameIndex != 0 {
		t.Errorf("first frame index = %d, want 0", f1.Head().FrameIndex)
	}
	if f2.Head().FrameIndex != 4 {
		t.Errorf("second frame index = %d, want 4 (framesPerBuffer)", f2.Head().FrameIndex)
	}
}

func TestReadReturnsEndOfStreamOnceTheChannelIsClosed(t *testing.T) {
	s := newTestSource(4, 1)
	close(s.frames)
	if _, err := s.Read(); err != source.ErrEndOfStream {
		t.Errorf("Read() on a closed channel = %v, want source.ErrEndOfStream", err)
	}
}

func TestResetIsANoOp(t *testing.T) {
	s := newTestSource(4, 1)
	if err := s.Reset(); err != nil {
		t.Errorf("Reset() = %v, want nil", err)
	}
}
