package titles

import (
	"archive/zip"
	"bufio"
	"fmt"
	"strings"
)

// ParseArchive reads every per-section member of a title list zip and
// returns the parsed records, members in archive directory order and lines
// in file order.
//
// A failure to open the archive itself is returned; individual lines that
// match neither grammar are skipped silently.
func (p *Parser) ParseArchive(path string) ([]TitleRecord, error) {
	var records []TitleRecord
	err := p.ScanArchive(path, func(r TitleRecord) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ScanArchive streams a title list zip through fn, one record at a time,
// without materializing the full record slice. fn returning an error stops
// the scan and surfaces that error.
func (p *Parser) ScanArchive(path string, fn func(TitleRecord) error) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open title archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if !strings.HasPrefix(member.Name, SectionFilePrefix) {
			continue
		}
		if err := p.scanMember(member, fn); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) scanMember(member *zip.File, fn func(TitleRecord) error) error {
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		record, ok := p.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := fn(*record); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read member %s: %w", member.Name, err)
	}
	return nil
}
