// Package symbol decomposes CPC classification codes into their
// hierarchical components.
//
// A full code such as "A01B1/00" nests four levels: section "A",
// subsection "A01", group "A01B" and the subgroup, which is the full code
// whenever it contains a slash. Decomposition is pure and total: any input,
// including malformed codes, yields a (possibly empty) Parts value.
package symbol

import "strings"

// Parts holds the hierarchical components of a classification code.
// An empty field means the component is absent.
type Parts struct {
	Section    string `json:"section,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	Group      string `json:"group,omitempty"`
	Subgroup   string `json:"subgroup,omitempty"`
}

// Decompose segments a classification code into its components.
//
// The rules apply in order and never invalidate an earlier one:
//  1. an empty or all-digit code has no components;
//  2. an alphabetic first character is the section;
//  3. digits at positions 1-2 make the first three characters the subsection;
//  4. an alphabetic character at position 3 makes the first four the group;
//  5. a code containing "/" is its own subgroup, unchanged.
//
// Decompose is idempotent: re-decomposing any component string yields
// fields consistent with the original code.
func Decompose(code string) Parts {
	var p Parts

	if code == "" || allDigits(code) {
		return p
	}

	if isAlpha(code[0]) {
		p.Section = code[:1]
	}
	if len(code) >= 3 && isDigit(code[1]) && isDigit(code[2]) {
		p.Subsection = code[:3]
	}
	if len(code) >= 4 && isAlpha(code[3]) {
		p.Group = code[:4]
	}
	if strings.Contains(code, "/") {
		p.Subgroup = code
	}

	return p
}

// Normalize removes all whitespace from a raw code, including interior
// runs. The bulk files pad symbols inconsistently; every loader funnels
// codes through this before storing or comparing them.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
