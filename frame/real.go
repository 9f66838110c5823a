package frame

// Real carries a block of time-domain samples: PCM audio, a windowed slice
// awaiting transform, or the output of an inverse transform.
type Real struct {
	Header
	Samples []float32
}

// NewReal constructs a Real frame over samples. The header's NumSamples is
// set to len(samples).
func NewReal(frameIndex int64, format AudioFormat, samples []float32) Real {
	return Real{
		Header:  Header{FrameIndex: frameIndex, Format: format, NumSamples: len(samples)},
		Samples: samples,
	}
}

// Magnitudes returns |Samples[i]| for every sample.
func (r Real) Magnitudes() []float32 {
	out := make([]float32, len(r.Samples))
	for i, s := range r.Samples {
		if s < 0 {
			s = -s
		}
		out[i] = s
	}
	return out
}

// Powers returns Samples[i]^2 for every sample.
func (r Real) Powers() []float32 {
	out := make([]float32, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s * s
	}
	return out
}

// Data returns the magnitudes view, the generic "payload" accessor every
// frame carrier exposes.
func (r Real) Data() []float32 { return r.Magnitudes() }

// Clone deep-copies the sample array under a frame carrying the same index
// and format.
func (r Real) Clone() Real {
	cp := make([]float32, len(r.Samples))
	copy(cp, r.Samples)
	return Real{Header: r.Header, Samples: cp}
}

// Derive allocates a new Real frame for the given samples under the given
// frame index, keeping the format. Used by processors that must not
// mutate their own last-emitted frame.
func (r Real) Derive(frameIndex int64, samples []float32) Real {
	return Real{
		Header:  Header{FrameIndex: frameIndex, Format: r.Format, NumSamples: len(samples)},
		Samples: samples,
	}
}

// Reuse overwrites r in place with a new frame index and sample payload.
// Only sound when the caller holds the sole reference to r (see
// SPEC_FULL.md §9 on the reuse/clone contract).
func (r *Real) Reuse(frameIndex int64, samples []float32) {
	r.FrameIndex = frameIndex
	r.NumSamples = len(samples)
	r.Samples = samples
}

// Equal reports exact structural equality: same header and identical
// sample arrays. Use AlmostEqual on Samples for tolerance-based comparison.
func (r Real) Equal(o Real) bool {
	if r.Header != o.Header {
		return false
	}
	if len(r.Samples) != len(o.Samples) {
		return false
	}
	for i := range r.Samples {
		if r.Samples[i] != o.Samples[i] {
			return false
		}
	}
	return true
}
