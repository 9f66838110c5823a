// Package frame defines the frame carrier types that flow through a jipes
// signal graph: plain time-domain samples, complex spectra, the various
// frequency-domain views derived from them, and the small audio-matrix
// carrier used by analytical accumulators.
package frame

// Header is the set of fields every frame carrier shares: which position in
// the stream it occupies, the audio format it was produced under, and how
// many input samples it represents.
type Header struct {
	FrameIndex int64
	Format     AudioFormat
	NumSamples int
}

// Timestamped is implemented by every frame carrier via embedded Header.
type Timestamped interface {
	Timestamp(unitsPerSecond int64) int64
}

// Frame is the type-erased carrier interface the graph package dispatches
// on. Every concrete frame type in this package implements it.
type Frame interface {
	Head() Header
}

// Head returns h itself, satisfying Frame for any type that embeds Header.
func (h Header) Head() Header { return h }

// Timestamp derives h.FrameIndex * unitsPerSecond / h.Format.SampleRate,
// truncated toward zero, without overflowing int64 for realistic frame
// indices and unit scales (seconds through nanoseconds).
//
// The product FrameIndex*unitsPerSecond can overflow int64 long before the
// division would reduce it back down (e.g. frame index in the billions at
// nanosecond resolution), so the division is split across the quotient and
// remainder of FrameIndex/SampleRate first.
func (h Header) Timestamp(unitsPerSecond int64) int64 {
	sampleRate := int64(h.Format.SampleRate)
	if sampleRate <= 0 {
		return 0
	}
	q := h.FrameIndex / sampleRate
	r := h.FrameIndex % sampleRate
	return q*unitsPerSecond + (r*unitsPerSecond)/sampleRate
}

// Common unit-per-second scales for Timestamp.
const (
	UnitSeconds      int64 = 1
	UnitMilliseconds int64 = 1_000
	UnitMicroseconds int64 = 1_000_000
	UnitNanoseconds  int64 = 1_000_000_000
)
