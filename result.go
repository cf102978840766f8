package cpc

import "strings"

// Validity status literals as they appear in the bulk data.
// The symbol list maps its "published" marker to StatusActive; any other
// literal from the source is stored verbatim.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusUnknown  = "UNKNOWN"
)

// SectionLetters is the fixed set of top-level CPC section letters.
const SectionLetters = "ABCDEFGHY"

// Warning messages appended by the validation engine, in the fixed order
// the checks run. The status warning carries the looked-up literal and is
// built with StatusWarning.
const (
	WarnInvalidFormat   = "Invalid symbol format"
	WarnNotInSymbolList = "Symbol not found in symbol list"
	WarnNoSchemaParent  = "Symbol not found in schema hierarchy"
)

// StatusWarning builds the warning for a non-active validity status.
func StatusWarning(status string) string {
	return "Symbol status: " + status
}

// Result contains the outcome of validating a single classification symbol.
// A fresh Result is allocated per validation call and is never mutated after
// it is returned; callers may share it freely across goroutines.
type Result struct {
	// SymbolValid is true if the code passes the structural format check.
	SymbolValid bool `json:"symbolValid"`

	// InSymbolList is true if the code is enumerated by the symbol list.
	InSymbolList bool `json:"inSymbolList"`

	// ValidityStatus is the status literal for the code, StatusUnknown if
	// neither reference source mentions it.
	ValidityStatus string `json:"validityStatus"`

	// SchemaValid is true if the scheme hierarchy records a parent.
	SchemaValid bool `json:"schemaValid"`

	// ParentSymbol is the immediate ancestor in the scheme hierarchy,
	// empty when SchemaValid is false.
	ParentSymbol string `json:"parentSymbol,omitempty"`

	// Warnings lists every failed check in check order. Empty means the
	// symbol passed everything.
	Warnings []string `json:"validationWarnings,omitempty"`
}

// NewResult returns an empty result with the default validity status.
func NewResult() *Result {
	return &Result{ValidityStatus: StatusUnknown}
}

// AddWarning appends a diagnostic. Warnings are never reordered or
// deduplicated.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Clean returns true if no check produced a warning.
func (r *Result) Clean() bool {
	return len(r.Warnings) == 0
}

// Active returns true if the symbol is well-formed, enumerated by the
// symbol list and currently in force.
func (r *Result) Active() bool {
	return r.SymbolValid && r.InSymbolList && r.ValidityStatus == StatusActive
}

// String returns a human-readable one-line summary.
func (r *Result) String() string {
	if r.Clean() {
		return "valid (" + r.ValidityStatus + ")"
	}
	return r.ValidityStatus + ": " + strings.Join(r.Warnings, "; ")
}
