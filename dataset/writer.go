// Package dataset writes parsed title records and validation verdicts to
// their output formats.
//
// The produced title dataset has the fixed column set
// {symbol, level, title, section, class, subclass}; the validation report
// pairs each code with its verdict and warnings.
package dataset

import (
	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/titles"
)

// Writer persists a parsed title dataset.
type Writer interface {
	WriteTitles(records []titles.TitleRecord) error
}

// Verdict pairs a validated code with its result.
type Verdict struct {
	Symbol string      `json:"symbol"`
	Result *cpc.Result `json:"result"`
}

// ReportWriter persists a validation report.
type ReportWriter interface {
	WriteReport(verdicts []Verdict) error
}
