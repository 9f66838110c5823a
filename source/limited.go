package source

import "github.com/austinkregel/jipes/frame"

// TimestampLimited wraps a Source so that it reports ErrEndOfStream once an
// upstream frame's timestamp reaches maxTimestamp, regardless of whether
// the wrapped source has more frames to give.
type TimestampLimited struct {
	Upstream       Source
	MaxTimestamp   int64
	UnitsPerSecond int64
}

// NewTimestampLimited constructs a TimestampLimited wrapper.
func NewTimestampLimited(upstream Source, maxTimestamp, unitsPerSecond int64) *TimestampLimited {
	return &TimestampLimited{Upstream: upstream, MaxTimestamp: maxTimestamp, UnitsPerSecond: unitsPerSecond}
}

// Read returns the next frame from Upstream, or ErrEndOfStream if its
// timestamp has reached MaxTimestamp.
func (t *TimestampLimited) Read() (frame.Frame, error) {
	f, err := t.Upstream.Read()
	if err != nil {
		return f, err
	}
	if f.Head().Timestamp(t.UnitsPerSecond) >= t.MaxTimestamp {
		return nil, ErrEndOfStream
	}
	return f, nil
}

// Reset rewinds the upstream source.
func (t *TimestampLimited) Reset() error {
	return t.Upstream.Reset()
}
