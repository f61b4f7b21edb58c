// Package batch runs the fingering solver over many score files
// concurrently. Each Solve call is independent and pure, so the pool is
// a plain bounded worker fan-out with no shared mutable state — grounded
// on a goroutine-plus-done-channel pattern for supervising a
// subprocess, adapted here to supervise solver calls instead.
package batch

import (
	"sync"

	"violin-fingering/fingering"
	"violin-fingering/score"
)

// Result pairs one input path with its solve outcome.
type Result struct {
	Path string
	Out  fingering.Output
	Err  error
}

// Solve runs score.Load + fingering.Solve over every path in paths,
// using up to workers goroutines concurrently. Results are returned in
// input order regardless of completion order.
func Solve(paths []string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = solveOne(paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func solveOne(path string) Result {
	s, err := score.Load(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	out, err := fingering.Solve(s.Params(), s.FingeringEvents())
	return Result{Path: path, Out: out, Err: err}
}
