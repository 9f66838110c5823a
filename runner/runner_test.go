package runner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
	"github.com/austinkregel/jipes/source"
)

type sliceSource struct {
	frames []frame.Frame
	i      int
}

func (s *sliceSource) Read() (frame.Frame, error) {
	if s.i >= len(s.frames) {
		return nil, source.ErrEndOfStream
	}
	f := s.frames[s.i]
	s.i++
	return f, nil
}

func (s *sliceSource) Reset() error { s.i = 0; return nil }

func passthrough(id graph.ID) *graph.BaseProcessor {
	return graph.NewBaseProcessor(id, func(in frame.Frame) (frame.Frame, bool, error) {
		return in, true, nil
	}, func(graph.Processor) bool { return false }, func() string { return fmt.Sprintf("passthrough(%v)", id) })
}

func TestBatchRunsEveryJobAndKeysResultsByName(t *testing.T) {
	jobs := []Job{
		{Name: "a", Build: func() (*graph.Pump, error) {
			p := graph.NewPump()
			p.SetSignalSource(&sliceSource{frames: []frame.Frame{frame.NewReal(0, frame.AudioFormat{SampleRate: 8000}, []float32{1})}})
			p.Add(passthrough("a-root"))
			return p, nil
		}},
		{Name: "b", Build: func() (*graph.Pump, error) {
			p := graph.NewPump()
			p.SetSignalSource(&sliceSource{frames: []frame.Frame{frame.NewReal(0, frame.AudioFormat{SampleRate: 8000}, []float32{2})}})
			p.Add(passthrough("b-root"))
			return p, nil
		}},
	}
	results := Batch(jobs, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["a"].Err != nil {
		t.Errorf("job a failed: %v", results["a"].Err)
	}
	if results["b"].Err != nil {
		t.Errorf("job b failed: %v", results["b"].Err)
	}
}

func TestBatchReportsPerJobBuildErrors(t *testing.T) {
	wantErr := errors.New("build failed")
	jobs := []Job{
		{Name: "broken", Build: func() (*graph.Pump, error) {
			return nil, wantErr
		}},
	}
	results := Batch(jobs, 1)
	if !errors.Is(results["broken"].Err, wantErr) {
		t.Errorf("expected the build error to surface in Result.Err, got %v", results["broken"].Err)
	}
}

func TestBatchWithZeroJobsReturnsEmptyMap(t *testing.T) {
	results := Batch(nil, 4)
	if len(results) != 0 {
		t.Errorf("expected an empty result map for zero jobs, got %d entries", len(results))
	}
}
