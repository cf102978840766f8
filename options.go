package cpc

import (
	"runtime"

	"go.uber.org/zap"
)

// Option configures the validation engine.
type Option func(*Options)

// Options holds all configuration for the validation engine.
type Options struct {
	// DataDir is the directory holding the downloaded bulk archives.
	DataDir string

	// Version is the six-digit release token embedded in the archive
	// filenames (e.g. "202505").
	Version string

	// Explicit archive paths. When set they override the DataDir/Version
	// naming convention for the corresponding archive.
	SymbolListPath string
	ValidityPath   string
	SchemePath     string

	// WorkerCount is the number of goroutines used for batch validation.
	WorkerCount int

	// ParallelLoad runs the reference loaders concurrently during
	// initialization. The symbol-list and validity loads stay sequenced
	// relative to each other so validity entries keep precedence.
	ParallelLoad bool

	// Logger receives loader and engine diagnostics. Nil means no output.
	Logger *zap.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		DataDir:      "data/raw",
		WorkerCount:  runtime.NumCPU(),
		ParallelLoad: true,
	}
}

// WithDataDir sets the directory holding the bulk archives.
func WithDataDir(dir string) Option {
	return func(o *Options) {
		o.DataDir = dir
	}
}

// WithVersion sets the bulk release token used to locate archives.
func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

// WithSymbolListPath overrides the symbol-list archive path.
func WithSymbolListPath(path string) Option {
	return func(o *Options) {
		o.SymbolListPath = path
	}
}

// WithValidityPath overrides the validity-file archive path.
func WithValidityPath(path string) Option {
	return func(o *Options) {
		o.ValidityPath = path
	}
}

// WithSchemePath overrides the scheme XML archive path.
func WithSchemePath(path string) Option {
	return func(o *Options) {
		o.SchemePath = path
	}
}

// WithWorkerCount sets the batch validation parallelism.
// Values <= 0 fall back to runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.WorkerCount = n
	}
}

// WithParallelLoad toggles concurrent reference loading.
func WithParallelLoad(enable bool) Option {
	return func(o *Options) {
		o.ParallelLoad = enable
	}
}

// WithLogger sets the logger injected into the loaders and the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
