// Package worker provides a bounded fan-out pool used to query multiple
// trained models concurrently.
package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/baitcheck/internal/model"
)

// PredictFunc runs one model's prediction
type PredictFunc func(ctx context.Context) (*model.ClassificationResult, error)

// Job is one model's prediction request
type Job struct {
	Model model.ModelType
	Run   PredictFunc
}

// Result carries one model's prediction outcome
type Result struct {
	Model  model.ModelType
	Result *model.ClassificationResult
	Err    error
}

// Pool executes prediction jobs with bounded concurrency
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			res, err := job.Run(p.ctx)
			select {
			case p.results <- Result{Model: job.Model, Result: res, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit enqueues a job. No-op after shutdown.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, waits for workers to drain it, and returns all
// results.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for r := range p.results {
		results = append(results, r)
	}
	return results
}

// Shutdown cancels in-flight jobs and releases the workers
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
