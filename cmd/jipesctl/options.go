package main

// Options holds the flag-bound settings for one jipesctl invocation, in the
// style of the teacher's internal/config/config.go Config struct — JSON
// tags for documentation/possible future serialization, loaded here from
// CLI flags rather than a file, per SPEC_FULL.md §1.1.
type Options struct {
	// Input is the path to the WAV file to process.
	Input string `json:"input"`

	// SliceLength is the sliding-window slice length, in samples.
	SliceLength int `json:"sliceLength"`

	// Hop is the sliding-window hop, in samples.
	Hop int `json:"hop"`

	// Bands is the number of multi-band transform output bands.
	Bands int `json:"bands"`
}

// DefaultOptions returns jipesctl's default settings.
func DefaultOptions() *Options {
	return &Options{
		SliceLength: 2048,
		Hop:         1024,
		Bands:       8,
	}
}
