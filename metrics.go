package cpc

import (
	"sync/atomic"
	"time"
)

// Metrics tracks validation and loading counters using lock-free atomic
// operations. All methods are safe for concurrent use.
type Metrics struct {
	// Validation counts
	validationsTotal atomic.Uint64
	validationsClean atomic.Uint64
	warningsTotal    atomic.Uint64

	// Timing (stored as nanoseconds)
	validationTimeTotal atomic.Uint64
	validationTimeMin   atomic.Uint64
	validationTimeMax   atomic.Uint64

	// Reference loading
	referenceLoads atomic.Uint64
	symbolsLoaded  atomic.Uint64
	statusesLoaded atomic.Uint64
	parentsLoaded  atomic.Uint64

	// Title parsing
	linesParsed  atomic.Uint64
	linesSkipped atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first sample becomes the minimum
	m.validationTimeMin.Store(^uint64(0))
	return m
}

// RecordValidation records a completed validation call.
func (m *Metrics) RecordValidation(duration time.Duration, warnings int) {
	m.validationsTotal.Add(1)
	if warnings == 0 {
		m.validationsClean.Add(1)
	}
	m.warningsTotal.Add(uint64(warnings))

	ns := uint64(duration.Nanoseconds())
	m.validationTimeTotal.Add(ns)

	for {
		old := m.validationTimeMin.Load()
		if ns >= old {
			break
		}
		if m.validationTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.validationTimeMax.Load()
		if ns <= old {
			break
		}
		if m.validationTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordReferenceLoad records one completed initialization pass.
func (m *Metrics) RecordReferenceLoad(symbols, statuses, parents int) {
	m.referenceLoads.Add(1)
	m.symbolsLoaded.Add(uint64(symbols))
	m.statusesLoaded.Add(uint64(statuses))
	m.parentsLoaded.Add(uint64(parents))
}

// RecordParsedLine records one accepted title line.
func (m *Metrics) RecordParsedLine() {
	m.linesParsed.Add(1)
}

// RecordSkippedLine records one line rejected by both grammars.
func (m *Metrics) RecordSkippedLine() {
	m.linesSkipped.Add(1)
}

// ReferenceLoads returns the number of initialization passes performed.
// Idempotent re-initialization leaves this at one.
func (m *Metrics) ReferenceLoads() uint64 {
	return m.referenceLoads.Load()
}

// Snapshot contains a point-in-time copy of all counters.
type Snapshot struct {
	ValidationsTotal uint64
	ValidationsClean uint64
	WarningsTotal    uint64

	ValidationTimeTotal time.Duration
	ValidationTimeMin   time.Duration
	ValidationTimeMax   time.Duration
	ValidationTimeAvg   time.Duration

	ReferenceLoads uint64
	SymbolsLoaded  uint64
	StatusesLoaded uint64
	ParentsLoaded  uint64

	LinesParsed  uint64
	LinesSkipped uint64
}

// Snapshot returns a consistent-enough copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		ValidationsTotal:    m.validationsTotal.Load(),
		ValidationsClean:    m.validationsClean.Load(),
		WarningsTotal:       m.warningsTotal.Load(),
		ValidationTimeTotal: time.Duration(m.validationTimeTotal.Load()),
		ValidationTimeMax:   time.Duration(m.validationTimeMax.Load()),
		ReferenceLoads:      m.referenceLoads.Load(),
		SymbolsLoaded:       m.symbolsLoaded.Load(),
		StatusesLoaded:      m.statusesLoaded.Load(),
		ParentsLoaded:       m.parentsLoaded.Load(),
		LinesParsed:         m.linesParsed.Load(),
		LinesSkipped:        m.linesSkipped.Load(),
	}

	if min := m.validationTimeMin.Load(); min != ^uint64(0) {
		s.ValidationTimeMin = time.Duration(min)
	}
	if s.ValidationsTotal > 0 {
		s.ValidationTimeAvg = s.ValidationTimeTotal / time.Duration(s.ValidationsTotal)
	}
	return s
}
