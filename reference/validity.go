package reference

import (
	"archive/zip"
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/symbol"
)

// loadValidity reads the validity file archive into a status map.
// Every plain-text member is tab-separated with columns
// [symbol, validFrom, validTo?]. A symbol with a valid-from marker and no
// valid-to marker is in force; anything else is not.
//
// A missing archive returns an empty map and no error. The returned map
// is merged over the symbol-list statuses by the caller, so the validity
// file has final say for any code it mentions.
func loadValidity(path string, logger *zap.Logger) (map[string]string, error) {
	status := make(map[string]string)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("validity archive not found", zap.String("path", path))
		return status, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open validity file %s: %w", path, err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if !strings.HasSuffix(member.Name, ".txt") {
			continue
		}
		logger.Debug("loading validity member", zap.String("member", member.Name))
		if err := readValidityMember(member, status); err != nil {
			return nil, err
		}
	}

	logger.Info("loaded validity file",
		zap.String("path", path),
		zap.Int("statuses", len(status)))
	return status, nil
}

func readValidityMember(member *zip.File, status map[string]string) error {
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}

		fields := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		if len(fields) < 2 {
			continue
		}

		code := symbol.Normalize(fields[0])
		validFrom := strings.TrimSpace(fields[1])
		validTo := ""
		if len(fields) > 2 {
			validTo = strings.TrimSpace(fields[2])
		}

		if validFrom != "" && validTo == "" {
			status[code] = cpc.StatusActive
		} else {
			status[code] = cpc.StatusInactive
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read member %s: %w", member.Name, err)
	}
	return nil
}
