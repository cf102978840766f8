// Package cpc provides parsing and validation for the Cooperative Patent
// Classification (CPC) bulk data files.
//
// The CPC authority publishes its taxonomy as several independently formatted
// zip archives: a title list (plain text, one classification row per line), a
// symbol list (CSV), a validity file (tab-separated) and the scheme XML. This
// module turns the title list into structured, hierarchy-aware records and
// cross-references the other three archives to answer "is this symbol valid?"
// for any classification code.
//
// # Quick Start
//
//	import (
//	    "github.com/gocpc/cpc"
//	    "github.com/gocpc/cpc/engine"
//	    "github.com/gocpc/cpc/titles"
//	)
//
//	validator := engine.New(
//	    cpc.WithDataDir("data/raw"),
//	    cpc.WithVersion("202505"),
//	)
//	if err := validator.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, _ := validator.ValidateSymbol(ctx, "A01B1/00")
//	if !result.Clean() {
//	    for _, w := range result.Warnings {
//	        fmt.Println(w)
//	    }
//	}
//
//	parser := titles.NewParser()
//	records, err := parser.ParseArchive("data/raw/CPCTitleList202505.zip")
//
// # Architecture
//
// The module is split into small composable packages:
//
//   - symbol: pure decomposition of a code into section/subsection/group/subgroup
//   - titles: title-list line grammar and zip archive streaming
//   - reference: the three reference-archive loaders and the read-only Store
//   - engine: the validation engine combining format check and reference lookups
//   - worker: goroutine pool for validating large symbol sets in parallel
//   - fetch: discovery and download of the bulk archives
//   - dataset: CSV/JSONL emission of title records and validation reports
//
// Reference data is loaded exactly once; after initialization every structure
// is read-only and ValidateSymbol is safe for concurrent use without locking.
package cpc
