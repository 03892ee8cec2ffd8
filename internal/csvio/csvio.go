// Package csvio adapts CSV files to the row model the core consumes. It
// lives outside the validation core: the validators are agnostic to where
// rows come from, this package just feeds them from disk.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dataloom/preflight/internal/sheet"
)

// ReadRows decodes CSV content into rows keyed by the header line. Missing
// trailing cells default to the empty string; cells past the header width
// are dropped. Blank lines are skipped by the reader.
func ReadRows(r io.Reader) ([]sheet.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []sheet.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make(sheet.Row, len(header))
		for i, field := range header {
			if field == "" {
				continue
			}
			if i < len(record) {
				row[field] = record[i]
			} else {
				row[field] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile reads one sheet file. A missing path is not an error: the sheet
// simply has no rows yet.
func ReadFile(path string) ([]sheet.Row, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open sheet file: %w", err)
	}
	defer f.Close()
	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// WriteRows encodes rows back to CSV using the given column order. Fields
// outside the header are not written.
func WriteRows(w io.Writer, header []string, rows []sheet.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, field := range header {
			record[i] = row[field]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
