package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/titles"
)

// CSVWriter emits title records as CSV with a header row.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSVWriter targeting w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteTitles writes the header and one row per record, nil levels as
// empty cells.
func (c *CSVWriter) WriteTitles(records []titles.TitleRecord) error {
	if err := c.w.Write(titles.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := c.w.Write(r.Row()); err != nil {
			return fmt.Errorf("write record %s: %w", r.Symbol, err)
		}
	}
	c.w.Flush()
	return c.w.Error()
}

// ReportCSVWriter emits a validation report as CSV.
type ReportCSVWriter struct {
	w *csv.Writer
}

// reportColumns is the fixed column set of the validation report.
var reportColumns = []string{
	"symbol", "symbolValid", "inSymbolList", "validityStatus",
	"schemaValid", "parentSymbol", "warnings",
}

// NewReportCSVWriter creates a ReportCSVWriter targeting w.
func NewReportCSVWriter(w io.Writer) *ReportCSVWriter {
	return &ReportCSVWriter{w: csv.NewWriter(w)}
}

// WriteReport writes one row per verdict. Warnings collapse into a single
// cell joined by "; ".
func (c *ReportCSVWriter) WriteReport(verdicts []Verdict) error {
	if err := c.w.Write(reportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, v := range verdicts {
		res := v.Result
		if res == nil {
			// A verdict without a result (a cancelled or failed job) still
			// gets a row, with the zero outcome.
			res = cpc.NewResult()
		}
		row := []string{
			v.Symbol,
			fmt.Sprintf("%t", res.SymbolValid),
			fmt.Sprintf("%t", res.InSymbolList),
			res.ValidityStatus,
			fmt.Sprintf("%t", res.SchemaValid),
			res.ParentSymbol,
			strings.Join(res.Warnings, "; "),
		}
		if err := c.w.Write(row); err != nil {
			return fmt.Errorf("write verdict %s: %w", v.Symbol, err)
		}
	}
	c.w.Flush()
	return c.w.Error()
}
