package cpc

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsRecordValidation(t *testing.T) {
	m := NewMetrics()

	m.RecordValidation(10*time.Millisecond, 0)
	m.RecordValidation(20*time.Millisecond, 2)
	m.RecordValidation(5*time.Millisecond, 1)

	s := m.Snapshot()
	if s.ValidationsTotal != 3 {
		t.Errorf("ValidationsTotal = %d; want 3", s.ValidationsTotal)
	}
	if s.ValidationsClean != 1 {
		t.Errorf("ValidationsClean = %d; want 1", s.ValidationsClean)
	}
	if s.WarningsTotal != 3 {
		t.Errorf("WarningsTotal = %d; want 3", s.WarningsTotal)
	}
	if s.ValidationTimeMin != 5*time.Millisecond {
		t.Errorf("ValidationTimeMin = %v; want 5ms", s.ValidationTimeMin)
	}
	if s.ValidationTimeMax != 20*time.Millisecond {
		t.Errorf("ValidationTimeMax = %v; want 20ms", s.ValidationTimeMax)
	}
}

func TestMetricsEmptySnapshot(t *testing.T) {
	m := NewMetrics()
	s := m.Snapshot()

	if s.ValidationTimeMin != 0 {
		t.Errorf("ValidationTimeMin = %v; want 0 before any sample", s.ValidationTimeMin)
	}
	if s.ValidationTimeAvg != 0 {
		t.Errorf("ValidationTimeAvg = %v; want 0 before any sample", s.ValidationTimeAvg)
	}
}

func TestMetricsReferenceLoads(t *testing.T) {
	m := NewMetrics()
	m.RecordReferenceLoad(100, 120, 90)

	if m.ReferenceLoads() != 1 {
		t.Errorf("ReferenceLoads = %d; want 1", m.ReferenceLoads())
	}
	s := m.Snapshot()
	if s.SymbolsLoaded != 100 || s.StatusesLoaded != 120 || s.ParentsLoaded != 90 {
		t.Errorf("load counts = %d/%d/%d; want 100/120/90",
			s.SymbolsLoaded, s.StatusesLoaded, s.ParentsLoaded)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordValidation(time.Millisecond, j%3)
				m.RecordParsedLine()
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.ValidationsTotal != 1000 {
		t.Errorf("ValidationsTotal = %d; want 1000", s.ValidationsTotal)
	}
	if s.LinesParsed != 1000 {
		t.Errorf("LinesParsed = %d; want 1000", s.LinesParsed)
	}
}
