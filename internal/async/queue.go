// Package async runs document extractions across a bounded worker pool.
// The coordinator holds no mutable per-document state, so documents can be
// processed in parallel without locking.
package async

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/insurelens/policy-parser/internal/pipeline"
)

// Job is one document to extract.
type Job struct {
	Path     string
	IssuerID string
}

// Result pairs a job with its outcome.
type Result struct {
	Job   Job
	RunID uuid.UUID
	Err   error
}

// Pool fans jobs out to a fixed number of workers.
type Pool struct {
	processor *pipeline.Processor
	workers   int
	logger    *slog.Logger
}

func NewPool(processor *pipeline.Processor, workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{processor: processor, workers: workers, logger: logger}
}

// Run processes all jobs and returns results in completion order. It stops
// submitting new work once ctx is cancelled; in-flight jobs finish.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	jobCh := make(chan Job)
	resCh := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				_, runID, err := p.processor.ProcessFile(ctx, job.Path, job.IssuerID)
				if err != nil {
					p.logger.Error("batch extraction failed", "path", job.Path, "error", err)
				}
				resCh <- Result{Job: job, RunID: runID, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(resCh)

	results := make([]Result, 0, len(jobs))
	for r := range resCh {
		results = append(results, r)
	}
	return results
}
