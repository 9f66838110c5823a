// Package runner implements multi-graph concurrent batch execution, per
// SPEC_FULL.md §5.1: spec.md's concurrency model keeps a single graph
// single-threaded, but "callers that need parallelism run independent
// graphs on their own threads" is exactly the teacher's
// internal/analysis/worker.go Worker shape (maxWorkers-bounded goroutines
// draining a job channel, sync/atomic progress counters), generalized here
// from "analyze N tracks" to "pump N independently-owned graphs."
package runner

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/austinkregel/jipes/graph"
)

// Job describes one graph to pump: a name to key its result by, and a
// constructor that builds a fresh *graph.Pump for this job. Building the
// Pump inside Job rather than passing one in keeps each job's processors
// and source exclusively owned by the goroutine that runs it, per spec.md
// §5's single-thread-per-graph rule.
type Job struct {
	Name  string
	Build func() (*graph.Pump, error)
}

// Result pairs a job's harvested Pump output with any error building or
// running it.
type Result struct {
	Output map[graph.ID]any
	Err    error
}

// Batch runs jobs concurrently, bounded by maxWorkers goroutines (0 means
// unbounded: one goroutine per job), and returns each job's Result keyed
// by Job.Name, mirroring the teacher's AnalysisResult/TrackInfo pairing.
func Batch(jobs []Job, maxWorkers int) map[string]Result {
	if maxWorkers <= 0 || maxWorkers > len(jobs) {
		maxWorkers = len(jobs)
	}
	if maxWorkers == 0 {
		return map[string]Result{}
	}

	queue := make(chan Job, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	results := make(map[string]Result, len(jobs))
	var mu sync.Mutex
	var completed, failed int64

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range queue {
				res := runJob(job)
				if res.Err != nil {
					atomic.AddInt64(&failed, 1)
					log.Printf("[RUNNER] worker %d: job %q failed: %v", workerID, job.Name, res.Err)
				} else {
					atomic.AddInt64(&completed, 1)
				}
				mu.Lock()
				results[job.Name] = res
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	log.Printf("[RUNNER] batch done: %d completed, %d failed", atomic.LoadInt64(&completed), atomic.LoadInt64(&failed))
	return results
}

func runJob(job Job) Result {
	pump, err := job.Build()
	if err != nil {
		return Result{Err: err}
	}
	out, err := pump.Pump()
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: out}
}
