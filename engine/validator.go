// Package engine provides the CPC symbol validation engine.
//
// The engine loads the three reference archives at most once, then answers
// per-symbol validation queries against the immutable reference store. A
// query runs four checks in fixed order - structural format, symbol-list
// membership, validity status, scheme hierarchy - and reports each failed
// check as a warning on the result, never as an error.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/reference"
)

// Validator validates CPC classification symbols against the loaded
// reference data. After initialization it is safe for unbounded concurrent
// use; ValidateSymbol only reads immutable structures and allocates a
// fresh result per call.
type Validator struct {
	options *cpc.Options
	logger  *zap.Logger
	metrics *cpc.Metrics

	initOnce sync.Once
	initErr  error
	store    *reference.Store
}

// New creates a Validator. Reference data is not loaded until
// Initialize or the first ValidateSymbol call.
func New(opts ...cpc.Option) *Validator {
	options := cpc.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Validator{
		options: options,
		logger:  logger,
		metrics: cpc.NewMetrics(),
	}
}

// archives resolves the archive paths from the options, explicit paths
// taking precedence over the DataDir/Version convention.
func (v *Validator) archives() reference.Archives {
	a := reference.ArchivesFor(v.options.DataDir, v.options.Version)
	if v.options.SymbolListPath != "" {
		a.SymbolList = v.options.SymbolListPath
	}
	if v.options.ValidityPath != "" {
		a.Validity = v.options.ValidityPath
	}
	if v.options.SchemePath != "" {
		a.Scheme = v.options.SchemePath
	}
	return a
}

// Initialize loads the reference archives. The load happens exactly once;
// subsequent calls are no-ops returning the first outcome. Archive I/O
// errors at the container level surface here and are not retried.
func (v *Validator) Initialize(ctx context.Context) error {
	v.initOnce.Do(func() {
		start := time.Now()
		store, err := reference.Load(ctx, v.archives(), v.logger, v.options.ParallelLoad)
		if err != nil {
			v.initErr = err
			return
		}
		v.store = store
		v.metrics.RecordReferenceLoad(store.SymbolCount(), store.StatusCount(), store.ParentCount())
		v.logger.Info("reference data loaded",
			zap.Int("symbols", store.SymbolCount()),
			zap.Int("statuses", store.StatusCount()),
			zap.Int("relations", store.ParentCount()),
			zap.Duration("elapsed", time.Since(start)))
	})
	return v.initErr
}

// ValidateSymbol validates one classification symbol.
//
// The returned error is non-nil only when implicit initialization fails;
// the symbol's content never causes an error. Every call returns a fully
// populated, freshly allocated result: flags for each check and a warning
// per failed check, appended in check order.
func (v *Validator) ValidateSymbol(ctx context.Context, code string) (*cpc.Result, error) {
	if err := v.Initialize(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	result := cpc.NewResult()

	if validFormat(code) {
		result.SymbolValid = true
	} else {
		result.AddWarning(cpc.WarnInvalidFormat)
	}

	if v.store.HasSymbol(code) {
		result.InSymbolList = true
	} else {
		result.AddWarning(cpc.WarnNotInSymbolList)
	}

	result.ValidityStatus = v.store.Status(code)
	if result.ValidityStatus != cpc.StatusActive {
		result.AddWarning(cpc.StatusWarning(result.ValidityStatus))
	}

	if parent, ok := v.store.Parent(code); ok {
		result.SchemaValid = true
		result.ParentSymbol = parent
	} else {
		result.AddWarning(cpc.WarnNoSchemaParent)
	}

	v.metrics.RecordValidation(time.Since(start), len(result.Warnings))
	return result, nil
}

// ValidateAll validates a slice of symbols in parallel, bounded by the
// configured worker count. Results are positionally aligned with codes.
func (v *Validator) ValidateAll(ctx context.Context, codes []string) ([]*cpc.Result, error) {
	if err := v.Initialize(ctx); err != nil {
		return nil, err
	}

	results := make([]*cpc.Result, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.options.WorkerCount)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			r, err := v.ValidateSymbol(gctx, code)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Metrics returns the engine's counters.
func (v *Validator) Metrics() *cpc.Metrics {
	return v.metrics
}

// validFormat checks the structural shape of a code: non-empty, a known
// section letter first, and digits at positions 1-2 when the code is long
// enough to have them.
func validFormat(code string) bool {
	if code == "" {
		return false
	}
	if !strings.ContainsRune(cpc.SectionLetters, rune(code[0])) {
		return false
	}
	if len(code) >= 3 && !(isDigit(code[1]) && isDigit(code[2])) {
		return false
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
