package transform

import (
	"fmt"

	"github.com/austinkregel/jipes/graph"
)

// idPrefix renders "id=<id>, " for inclusion in a processor's String(), or
// "" if id is nil, matching the convention framing.idPrefix follows (see
// SPEC_FULL.md §6).
func idPrefix(id graph.ID) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("id=%v, ", id)
}
