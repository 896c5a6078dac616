package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRows converts an uploaded spreadsheet payload into ordered RawRows.
// XLSX files are read from the first sheet; anything else is treated as CSV.
// The header row is consumed to derive field names (lower-cased, trimmed);
// each following row becomes one RawRow. Rows whose cells are all empty are
// skipped. A file that cannot be parsed at all is a batch-level failure.
func ReadRows(r io.Reader, filename string) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readXLSXRows(r)
	default:
		return readCSVRows(r)
	}
}

func readXLSXRows(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("spreadsheet must include a header row")
	}

	headers := normalizeHeaders(cells[0])
	var rows []RawRow
	for _, record := range cells[1:] {
		if row := buildRow(headers, record); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func readCSVRows(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV must include a header row")
	}
	headers := normalizeHeaders(header)

	var rows []RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		if row := buildRow(headers, record); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func normalizeHeaders(header []string) []string {
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers
}

// buildRow zips a cell record with the header names. Returns nil for rows
// with no non-empty cells.
func buildRow(headers, record []string) RawRow {
	row := make(RawRow, len(headers))
	empty := true
	for i, h := range headers {
		if h == "" || i >= len(record) {
			continue
		}
		row[h] = record[i]
		if strings.TrimSpace(record[i]) != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return row
}
