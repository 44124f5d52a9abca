// Package worker parallelizes analysis across independent input files. The
// pipeline itself stays single-threaded; the pool only fans out whole
// inputs, each of which is a pure computation.
package worker

import (
	"context"
	"sync"

	"github.com/reliefmap/relief/internal/model"
)

// Result is the outcome of analyzing one input file.
type Result struct {
	Path     string
	Analysis *model.StructuralAnalysis
	Err      error
}

// AnalyzeFunc analyzes the input at path.
type AnalyzeFunc func(ctx context.Context, path string) (*model.StructuralAnalysis, error)

// Pool bounds how many inputs are analyzed concurrently.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run analyzes every path and returns results in input order. Paths not yet
// started when the context is cancelled report the context error.
func (p *Pool) Run(ctx context.Context, paths []string, analyze AnalyzeFunc) []Result {
	results := make([]Result, len(paths))
	semaphore := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = Result{Path: path, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			analysis, err := analyze(ctx, path)
			results[idx] = Result{Path: path, Analysis: analysis, Err: err}
		}(i, path)
	}

	wg.Wait()
	return results
}
