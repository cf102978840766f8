package titles

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/cache"
	"github.com/gocpc/cpc/symbol"
)

// Line grammars, tried in order. Leveled rows carry an integer hierarchy
// depth between the symbol and the title; section, class and subclass rows
// go straight from symbol to title.
var (
	leveledLine   = regexp.MustCompile(`^([A-Z0-9/]+)\s+(\d+)\s+(.+)$`)
	unleveledLine = regexp.MustCompile(`^([A-Z0-9/]+)\s+(.+)$`)
)

// Parser turns title list lines into TitleRecords.
// A Parser is safe for concurrent use.
type Parser struct {
	parts   *cache.Cache[string, symbol.Parts]
	metrics *cpc.Metrics
}

// NewParser creates a Parser with a decomposition cache sized for the
// section/class prefix churn of a full title list.
func NewParser() *Parser {
	return &Parser{
		parts:   cache.New[string, symbol.Parts](4096),
		metrics: cpc.NewMetrics(),
	}
}

// ParseLine parses one line of a title list file.
//
// Blank lines and lines matching neither grammar return (nil, false); a
// malformed line is skipped, not reported. The returned record's Section,
// Class and Subclass come from decomposing the extracted symbol.
func (p *Parser) ParseLine(line string) (*TitleRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	var (
		sym, title string
		level      *int
	)

	if m := leveledLine.FindStringSubmatch(line); m != nil {
		sym, title = m[1], m[3]
		n, err := strconv.Atoi(m[2])
		if err != nil {
			p.metrics.RecordSkippedLine()
			return nil, false
		}
		level = &n
	} else if m := unleveledLine.FindStringSubmatch(line); m != nil {
		sym, title = m[1], m[2]
	} else {
		p.metrics.RecordSkippedLine()
		return nil, false
	}

	p.metrics.RecordParsedLine()
	parts := p.parts.GetOrCompute(sym, symbol.Decompose)

	return &TitleRecord{
		Symbol:   sym,
		Level:    level,
		Title:    title,
		Section:  parts.Section,
		Class:    parts.Subsection,
		Subclass: parts.Group,
	}, true
}

// CacheStats exposes the decomposition cache counters.
func (p *Parser) CacheStats() cache.Stats {
	return p.parts.Stats()
}

// Metrics returns the parser's line counters.
func (p *Parser) Metrics() *cpc.Metrics {
	return p.metrics
}
