// Package titles parses the CPC title list archive into structured,
// hierarchy-aware records.
//
// The title list ships as a zip of per-section text files (cpc-section-A.txt
// and so on), one classification row per line. Leveled rows carry a
// hierarchy depth; section, class and subclass rows do not.
package titles

import (
	"path/filepath"
	"strconv"
)

// SectionFilePrefix is the fixed member-name prefix of the per-section
// files inside the title list archive.
const SectionFilePrefix = "cpc-section-"

// Columns is the fixed column set of the produced dataset, in order.
var Columns = []string{"symbol", "level", "title", "section", "class", "subclass"}

// TitleRecord is one parsed row of the title list. Records are immutable
// once produced.
type TitleRecord struct {
	// Symbol is the classification code as it appears on the line.
	Symbol string `json:"symbol"`

	// Level is the hierarchy depth for group and subgroup rows; nil for
	// section, class and subclass rows.
	Level *int `json:"level"`

	// Title is the verbatim remainder of the line, including any
	// parentheses, semicolons or slashes it contains.
	Title string `json:"title"`

	// Section, Class and Subclass are derived from the symbol.
	Section  string `json:"section,omitempty"`
	Class    string `json:"class,omitempty"`
	Subclass string `json:"subclass,omitempty"`
}

// Row returns the record as strings in Columns order. A nil level becomes
// an empty cell.
func (r TitleRecord) Row() []string {
	level := ""
	if r.Level != nil {
		level = strconv.Itoa(*r.Level)
	}
	return []string{r.Symbol, level, r.Title, r.Section, r.Class, r.Subclass}
}

// ArchiveFor returns the conventional title list archive path for a bulk
// release, e.g. dir/CPCTitleList202505.zip.
func ArchiveFor(dir, version string) string {
	return filepath.Join(dir, "CPCTitleList"+version+".zip")
}
