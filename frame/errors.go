package frame

import "fmt"

// FormatError reports a per-frame format violation: a mono-only transform
// given a multi-channel frame, a boundary array of the wrong shape, and
// similar construction-time problems with a frame's own data. It is
// distinct from graph.ConfigError, which covers whole-graph wiring
// mistakes discovered before any frame flows.
type FormatError struct {
	Op     string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("frame: %s: %s", e.Op, e.Reason)
}
