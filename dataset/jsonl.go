package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocpc/cpc/titles"
)

// JSONLWriter emits title records or verdicts as one JSON object per line.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONLWriter targeting w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w)}
}

// WriteTitles writes one JSON object per record.
func (j *JSONLWriter) WriteTitles(records []titles.TitleRecord) error {
	for _, r := range records {
		if err := j.enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %s: %w", r.Symbol, err)
		}
	}
	return nil
}

// WriteReport writes one JSON object per verdict.
func (j *JSONLWriter) WriteReport(verdicts []Verdict) error {
	for _, v := range verdicts {
		if err := j.enc.Encode(v); err != nil {
			return fmt.Errorf("encode verdict %s: %w", v.Symbol, err)
		}
	}
	return nil
}
