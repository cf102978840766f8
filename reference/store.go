// Package reference loads the CPC reference archives - symbol list,
// validity file and scheme XML - into an in-memory, read-only Store.
//
// Each archive format is independent and each loader degrades gracefully:
// a missing archive leaves its structure empty and is logged, a malformed
// row is skipped, a malformed XML member is skipped while other members
// still load. Only a container-level failure (an archive that exists but
// cannot be opened) aborts loading.
package reference

import (
	"path/filepath"

	"github.com/gocpc/cpc"
)

// Archives names the three reference archive paths.
type Archives struct {
	SymbolList string
	Validity   string
	Scheme     string
}

// ArchivesFor applies the bulk naming convention to a directory and
// release token.
func ArchivesFor(dir, version string) Archives {
	return Archives{
		SymbolList: filepath.Join(dir, "CPCSymbolList"+version+".zip"),
		Validity:   filepath.Join(dir, "CPCValidityFile"+version+".zip"),
		Scheme:     filepath.Join(dir, "CPCSchemeXML"+version+".zip"),
	}
}

// Store holds the loaded reference structures. It is populated exactly
// once by Load and read-only afterwards; lookups need no locking.
type Store struct {
	symbols map[string]struct{}
	status  map[string]string
	parents map[string]string
}

// emptyStore returns a Store with all structures allocated and empty.
func emptyStore() *Store {
	return &Store{
		symbols: make(map[string]struct{}),
		status:  make(map[string]string),
		parents: make(map[string]string),
	}
}

// HasSymbol reports whether the symbol list enumerates code.
func (s *Store) HasSymbol(code string) bool {
	_, ok := s.symbols[code]
	return ok
}

// Status returns the validity status for code, cpc.StatusUnknown if no
// source mentions it.
func (s *Store) Status(code string) string {
	if status, ok := s.status[code]; ok {
		return status
	}
	return cpc.StatusUnknown
}

// Parent returns the immediate scheme ancestor of code.
func (s *Store) Parent(code string) (string, bool) {
	parent, ok := s.parents[code]
	return parent, ok
}

// SymbolCount returns the number of enumerated symbols.
func (s *Store) SymbolCount() int { return len(s.symbols) }

// StatusCount returns the number of codes with a recorded status.
func (s *Store) StatusCount() int { return len(s.status) }

// ParentCount returns the number of recorded hierarchy relations.
func (s *Store) ParentCount() int { return len(s.parents) }
