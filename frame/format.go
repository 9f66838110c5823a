package frame

// AudioFormat carries the properties of the PCM source a frame was derived
// from. Only SampleRate and Channels affect graph semantics (bin/frequency
// math, mono-only checks); BitDepth, Signed and BigEndian are reported for
// downstream decoders/sinks but never read by core processors.
type AudioFormat struct {
	SampleRate int
	BitDepth   int
	Channels   int
	Signed     bool
	BigEndian  bool
}

// Mono reports whether the format describes a single-channel stream.
func (f AudioFormat) Mono() bool { return f.Channels == 1 }
