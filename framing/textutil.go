// Package framing implements the framing/reconstruction processors: window
// slicing and overlap-add reconstruction, zero-padding, channel selection
// and interleaving, band splitting, aggregation joins, and the simple
// frame-index filters (frame-number filter, downsample, resample).
package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/graph"
)

// idPrefix renders "id=<id>, " for inclusion in a processor's String(), or
// "" if id is nil. Matches the textual-representation convention spec.md
// §6 requires processors to follow when constructed with an explicit id.
func idPrefix(id graph.ID) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("id=%v, ", id)
}
