package reference

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/symbol"
)

// symbolListMember identifies the tabular member inside the symbol list
// archive.
const symbolListMember = "CPCSymbolList"

// statusColumns is the minimum column count past which the last column is
// read as a status literal.
const statusColumns = 6

// loadSymbolList reads the symbol list archive into a symbol set and a
// status map. A missing archive returns empty maps and no error.
func loadSymbolList(path string, logger *zap.Logger) (map[string]struct{}, map[string]string, error) {
	symbols := make(map[string]struct{})
	status := make(map[string]string)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("symbol list archive not found", zap.String("path", path))
		return symbols, status, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open symbol list %s: %w", path, err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if !strings.Contains(member.Name, symbolListMember) || !strings.HasSuffix(member.Name, ".csv") {
			continue
		}
		logger.Debug("loading symbol list member", zap.String("member", member.Name))
		if err := readSymbolListMember(member, symbols, status); err != nil {
			return nil, nil, err
		}
	}

	logger.Info("loaded symbol list",
		zap.String("path", path),
		zap.Int("symbols", len(symbols)))
	return symbols, status, nil
}

func readSymbolListMember(member *zip.File, symbols map[string]struct{}, status map[string]string) error {
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// Header row is discarded.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("read member %s: %w", member.Name, err)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row is skippable; a failing member stream is not.
			// Without the distinction a persistent read error (a corrupt
			// deflate stream, a checksum mismatch) would loop forever.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return fmt.Errorf("read member %s: %w", member.Name, err)
		}
		if len(row) == 0 {
			continue
		}

		code := symbol.Normalize(row[0])
		if code == "" {
			continue
		}
		symbols[code] = struct{}{}

		if len(row) > statusColumns {
			literal := row[len(row)-1]
			if literal == "published" {
				literal = cpc.StatusActive
			}
			status[code] = literal
		} else {
			status[code] = cpc.StatusUnknown
		}
	}
	return nil
}
