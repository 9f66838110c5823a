package frame

import "math"

// DefaultTolerance is the absolute per-sample tolerance AlmostEqual uses
// when callers don't need a tighter bound. spec.md leaves numeric frame
// equality undefined beyond exact array comparison; 1e-4 is the tolerance
// this module documents and tests against (see SPEC_FULL.md §9).
const DefaultTolerance = 1e-4

// AlmostEqual reports whether a and b have the same length and every pair
// of elements differs by no more than tol.
func AlmostEqual(a, b []float32, tol float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if float64(d) > float64(tol) {
			return false
		}
	}
	return true
}

func almostEqualScalar(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}
