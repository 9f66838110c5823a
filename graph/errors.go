package graph

import "fmt"

// ConfigError reports a construction-time wiring mistake: a pipeline with
// interior branching, a pump with no source, a downsample node asked to keep
// every 0th frame. Construction errors are unrecoverable and must be reported to
// the caller before any frame flows, per spec.md §7.
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("graph: %s: %s", e.Component, e.Reason)
}
