// Package worker fans document jobs out over a fixed-size goroutine pool.
// Parallelism is across documents only; each document runs its pipeline
// sequentially inside a single worker.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
)

// ProcessFunc turns one document into an outline.
type ProcessFunc func(ctx context.Context, path string) (model.Outline, error)

// Job is one document queued for processing.
type Job struct {
	Index int
	Path  string
}

// Result pairs a job with its outcome. Exactly one of Outline and Err is
// meaningful; Duration covers the processing call only.
type Result struct {
	Index    int
	Path     string
	Outline  model.Outline
	Err      error
	Duration time.Duration
}

// Config controls pool behavior.
type Config struct {
	// Workers is the number of documents processed concurrently.
	// Values below 1 are treated as 1.
	Workers int

	// Logger receives per-document progress. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Pool runs document jobs across a bounded set of workers.
type Pool struct {
	workers int
	log     *zap.Logger
}

// New creates a pool with the given configuration.
func New(config Config) *Pool {
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{workers: workers, log: log}
}

// Run processes every path and returns one result per path, in input order.
// Per-document failures are recorded in the matching Result and do not stop
// the batch. Canceling the context stops the pool between documents; jobs
// not yet started report the context error.
func (p *Pool) Run(ctx context.Context, paths []string, process ProcessFunc) []Result {
	if len(paths) == 0 {
		return nil
	}

	jobs := make(chan Job, len(paths))
	for i, path := range paths {
		jobs <- Job{Index: i, Path: path}
	}
	close(jobs)

	workers := p.workers
	if workers > len(paths) {
		workers = len(paths)
	}
	results := make(chan Result, len(paths))

	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- p.runJob(ctx, job, process)
			}
		}()
	}
	wg.Wait()
	close(results)

	ordered := make([]Result, len(paths))
	for r := range results {
		ordered[r.Index] = r
	}
	return ordered
}

func (p *Pool) runJob(ctx context.Context, job Job, process ProcessFunc) Result {
	if err := ctx.Err(); err != nil {
		p.log.Debug("job skipped", zap.String("path", job.Path), zap.Error(err))
		return Result{Index: job.Index, Path: job.Path, Err: err}
	}

	start := time.Now()
	ol, err := process(ctx, job.Path)
	elapsed := time.Since(start)

	if err != nil {
		p.log.Warn("document failed",
			zap.String("path", job.Path),
			zap.Duration("duration", elapsed),
			zap.Error(err))
	} else {
		p.log.Debug("document processed",
			zap.String("path", job.Path),
			zap.Int("headings", len(ol)),
			zap.Duration("duration", elapsed))
	}

	return Result{Index: job.Index, Path: job.Path, Outline: ol, Err: err, Duration: elapsed}
}
