// Package wavsource implements source.Source over a WAV file, decoded
// in-process via go-audio/wav rather than the teacher's ffmpeg-subprocess
// approach (internal/audio/decoder.go) — a better fit for a library, per
// SPEC_FULL.md §1.2/§6.1. Grounded in the pack repos that already pair
// go-audio/wav with go-audio/audio for PCM decode (rayboyd-audio-engine,
// tphakala-birdnet-go).
package wavsource

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/source"
)

// Source implements source.Source over an in-memory decode of one WAV
// file's full PCM buffer, yielding frame.Real frames of blockSize samples
// (per channel, interleaved) at a time.
type Source struct {
	file      *os.File
	format    frame.AudioFormat
	samples   []float32 // interleaved, all channels
	blockSize int
	cursor    int
	frameIdx  int64
	closed    bool
}

// Open decodes path's full PCM content into memory and returns a Source
// that yields blockSize-sample (per channel) frames from it. blockSize
// must be positive.
func Open(path string, blockSize int) (*Source, error) {
	if blockSize <= 0 {
		return nil, &sourceConfigError{"wavsource.Open", "blockSize must be positive"}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavsource: open %s: %w", path, err)
	}
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("wavsource: %s is not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("wavsource: decode %s: %w", path, err)
	}
	samples := intBufferToFloat32(buf)
	format := frame.AudioFormat{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
		Signed:     true,
	}
	return &Source{file: f, format: format, samples: samples, blockSize: blockSize}, nil
}

func intBufferToFloat32(buf *audio.IntBuffer) []float32 {
	out := make([]float32, len(buf.Data))
	max := float32(int(1) << uint(buf.SourceBitDepth-1))
	if max == 0 {
		max = 1
	}
	for i, v := range buf.Data {
		out[i] = float32(v) / max
	}
	return out
}

// Read returns the next blockSize-sample (per channel) frame, or
// source.ErrEndOfStream once every decoded sample has been yielded.
func (s *Source) Read() (frame.Frame, error) {
	channels := s.format.Channels
	if channels < 1 {
		channels = 1
	}
	want := s.blockSize * channels
	if s.cursor >= len(s.samples) {
		return nil, source.ErrEndOfStream
	}
	end := s.cursor + want
	if end > len(s.samples) {
		end = len(s.samples)
	}
	chunk := make([]float32, want)
	copy(chunk, s.samples[s.cursor:end])
	out := frame.NewReal(s.frameIdx, s.format, chunk)
	s.frameIdx += int64(s.blockSize)
	s.cursor = end
	return out, nil
}

// Format returns the audio format decoded from the WAV header.
func (s *Source) Format() frame.AudioFormat { return s.format }

// Reset rewinds to the start of the decoded buffer.
func (s *Source) Reset() error {
	s.cursor = 0
	s.frameIdx = 0
	return nil
}

// Close releases the underlying file handle. A second call reports
// source.ErrAlreadyClosed.
func (s *Source) Close() error {
	if s.closed {
		return source.ErrAlreadyClosed
	}
	s.closed = true
	return s.file.Close()
}

type sourceConfigError struct {
	op, reason string
}

func (e *sourceConfigError) Error() string { return e.op + ": " + e.reason }
