package worker

import "github.com/gocpc/cpc"

// Job is one symbol validation request.
type Job struct {
	// ID correlates the job with its result. NewJob assigns a random one.
	ID string

	// Symbol is the classification code to validate.
	Symbol string
}

// JobResult is the outcome of one job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Symbol is the code that was validated.
	Symbol string

	// Result is the validation verdict.
	Result *cpc.Result

	// Err is set when validation could not run (initialization failure
	// or pool shutdown), never for the symbol's content.
	Err error

	// Duration is the time taken to validate.
	Duration int64
}

// BatchResult aggregates the results of a batch run.
type BatchResult struct {
	// Results holds all job results.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs processed, including failures.
	CompletedJobs int

	// FailedJobs is the number of jobs that returned an error.
	FailedJobs int

	// TotalDuration is the summed validation time in nanoseconds.
	TotalDuration int64
}

// InvalidSymbols returns the results whose symbol is not fully active:
// malformed, unlisted or not currently in force.
func (br *BatchResult) InvalidSymbols() []*JobResult {
	var invalid []*JobResult
	for _, r := range br.Results {
		if r.Err != nil {
			invalid = append(invalid, r)
			continue
		}
		if r.Result != nil && !r.Result.Active() {
			invalid = append(invalid, r)
		}
	}
	return invalid
}

// WarningCount returns the total number of warnings across all results.
func (br *BatchResult) WarningCount() int {
	count := 0
	for _, r := range br.Results {
		if r.Result != nil {
			count += len(r.Result.Warnings)
		}
	}
	return count
}
