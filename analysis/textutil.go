package analysis

import (
	"fmt"

	"github.com/austinkregel/jipes/graph"
)

// idPrefix renders "id=<id>, " for inclusion in a processor's String(), or
// "" if id is nil, matching the convention framing.idPrefix follows.
func idPrefix(id graph.ID) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("id=%v, ", id)
}
