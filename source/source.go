// Package source defines the pull-side contract a signal graph reads from:
// something that yields frame.Frame values one at a time until exhausted.
package source

import (
	"errors"

	"github.com/austinkregel/jipes/frame"
)

// ErrEndOfStream is returned by Read when the source is exhausted. It is
// not a failure: a graph.Pump treats it as the normal signal to flush and
// stop.
var ErrEndOfStream = errors.New("source: end of stream")

// ErrAlreadyClosed is returned by a second call to Close on a source that
// implements Closer; double-close is a state error, not a silent no-op.
var ErrAlreadyClosed = errors.New("source: already closed")

// Source yields frames until it reports ErrEndOfStream.
type Source interface {
	// Read returns the next frame, or ErrEndOfStream when exhausted, or any
	// other error describing why reading failed.
	Read() (frame.Frame, error)
	// Reset rewinds the source to its initial position, if supported.
	Reset() error
}

// Closer is implemented by sources that hold an underlying resource (a file
// handle, a capture device). Close must be idempotent-as-error: a second
// call reports ErrAlreadyClosed rather than panicking or silently
// succeeding.
type Closer interface {
	Close() error
}
