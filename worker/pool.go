// Package worker provides a goroutine pool for validating large symbol
// sets in parallel.
//
// Validation of an initialized engine is lock-free and allocates one
// result per call, so a full title list (tens of thousands of codes) is
// embarrassingly parallel; the pool just fans jobs across workers and
// funnels results back.
package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gocpc/cpc"
)

// Validator is the interface the pool drives. *engine.Validator satisfies it.
type Validator interface {
	ValidateSymbol(ctx context.Context, code string) (*cpc.Result, error)
}

// ErrNoValidator is returned on jobs processed by a pool without a validator.
var ErrNoValidator = poolError("no validator configured")

type poolError string

func (e poolError) Error() string {
	return string(e)
}

// Pool manages a set of worker goroutines validating symbols.
type Pool struct {
	workers    int
	jobsChan   chan Job
	resultChan chan *JobResult
	validator  Validator
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     atomic.Bool

	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
	totalDuration atomic.Uint64
}

// NewPool creates a pool with the given number of workers.
// workers <= 0 defaults to runtime.NumCPU().
func NewPool(validator Validator, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		workers:    workers,
		jobsChan:   make(chan Job, workers*2),
		resultChan: make(chan *JobResult, workers*2),
		validator:  validator,
		ctx:        ctx,
		cancel:     cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// NewJob builds a job with a generated ID.
func NewJob(symbol string) Job {
	return Job{ID: uuid.NewString(), Symbol: symbol}
}

// Submit queues a job, blocking while the queue is full.
// Returns false if the pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	}
}

// Results returns the channel job results arrive on.
func (p *Pool) Results() <-chan *JobResult {
	return p.resultChan
}

// CloseAndWait stops accepting jobs, waits for the workers to drain the
// queue and returns every pending result.
func (p *Pool) CloseAndWait() *BatchResult {
	if p.closed.Swap(true) {
		return &BatchResult{}
	}

	close(p.jobsChan)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(p.resultChan)
		close(done)
	}()

	batch := &BatchResult{}
	for result := range p.resultChan {
		batch.Results = append(batch.Results, result)
		if result.Err != nil {
			batch.FailedJobs++
		}
	}
	<-done
	p.cancel()

	batch.TotalJobs = int(p.jobsSubmitted.Load())
	batch.CompletedJobs = int(p.jobsCompleted.Load())
	batch.TotalDuration = int64(p.totalDuration.Load())
	return batch
}

// Close shuts the pool down, discarding any unread results.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}

	p.cancel()
	close(p.jobsChan)

	done := make(chan struct{})
	go func() {
		for range p.resultChan {
		}
		close(done)
	}()

	p.wg.Wait()
	close(p.resultChan)
	<-done
}

// Stats contains pool counters.
type Stats struct {
	Workers       int
	JobsSubmitted uint64
	JobsCompleted uint64
	AvgDuration   time.Duration
}

// Stats returns the current pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:       p.workers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsCompleted: p.jobsCompleted.Load(),
		AvgDuration:   p.averageDuration(),
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobsChan {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		result := p.processJob(job)
		p.jobsCompleted.Add(1)
		p.totalDuration.Add(uint64(result.Duration))

		select {
		case <-p.ctx.Done():
			return
		case p.resultChan <- result:
		}
	}
}

func (p *Pool) processJob(job Job) *JobResult {
	start := time.Now()

	result := &JobResult{
		ID:     job.ID,
		Symbol: job.Symbol,
	}

	if p.validator == nil {
		result.Err = ErrNoValidator
		result.Duration = time.Since(start).Nanoseconds()
		return result
	}

	result.Result, result.Err = p.validator.ValidateSymbol(p.ctx, job.Symbol)
	result.Duration = time.Since(start).Nanoseconds()
	return result
}

func (p *Pool) averageDuration() time.Duration {
	completed := p.jobsCompleted.Load()
	if completed == 0 {
		return 0
	}
	return time.Duration(p.totalDuration.Load() / completed)
}
