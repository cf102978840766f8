package worker

import (
	"context"
	"runtime"
	"sync"
)

// BatchValidator validates symbol slices with positional results.
type BatchValidator struct {
	validator Validator
	workers   int
}

// NewBatchValidator creates a batch validator.
// workers <= 0 defaults to runtime.NumCPU().
func NewBatchValidator(validator Validator, workers int) *BatchValidator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchValidator{
		validator: validator,
		workers:   workers,
	}
}

// ValidateBatch validates symbols in parallel. Results keep the input
// order regardless of completion order.
func (bv *BatchValidator) ValidateBatch(ctx context.Context, symbols []string) *BatchResult {
	if len(symbols) == 0 {
		return &BatchResult{Results: make([]*JobResult, 0)}
	}

	// Small batches are not worth the fan-out.
	if len(symbols) <= 2 {
		return bv.validateSequential(ctx, symbols)
	}
	return bv.validateParallel(ctx, symbols)
}

func (bv *BatchValidator) validateSequential(ctx context.Context, symbols []string) *BatchResult {
	batch := &BatchResult{
		Results:   make([]*JobResult, 0, len(symbols)),
		TotalJobs: len(symbols),
	}

	for _, sym := range symbols {
		select {
		case <-ctx.Done():
			return batch
		default:
		}

		result, err := bv.validator.ValidateSymbol(ctx, sym)
		batch.Results = append(batch.Results, &JobResult{
			Symbol: sym,
			Result: result,
			Err:    err,
		})
		batch.CompletedJobs++
		if err != nil {
			batch.FailedJobs++
		}
	}
	return batch
}

func (bv *BatchValidator) validateParallel(ctx context.Context, symbols []string) *BatchResult {
	workers := bv.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	type indexedJob struct {
		index  int
		symbol string
	}

	jobs := make(chan indexedJob, len(symbols))
	results := make([]*JobResult, len(symbols))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := bv.validator.ValidateSymbol(ctx, job.symbol)
				results[job.index] = &JobResult{
					Symbol: job.symbol,
					Result: result,
					Err:    err,
				}
			}
		}()
	}

	for i, sym := range symbols {
		jobs <- indexedJob{index: i, symbol: sym}
	}
	close(jobs)
	wg.Wait()

	batch := &BatchResult{
		Results:   results,
		TotalJobs: len(symbols),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		batch.CompletedJobs++
		if r.Err != nil {
			batch.FailedJobs++
		}
	}
	return batch
}

// ValidateSymbols is a convenience wrapper validating symbols with
// validator across runtime.NumCPU() workers.
func ValidateSymbols(ctx context.Context, validator Validator, symbols []string) *BatchResult {
	return NewBatchValidator(validator, runtime.NumCPU()).ValidateBatch(ctx, symbols)
}
