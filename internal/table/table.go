// =============================================================================
// WinBag2Hiopos - Tabular Input Reader
// =============================================================================
//
// This module loads the delimited export files into row-oriented tables keyed
// by column name. The Hiopos exports are semicolon-delimited CSV with a single
// header row, but the registers can also be configured to export .xlsx
// workbooks, so both formats load through the same entry point.
//
// The reader is deliberately dumb: it knows nothing about what the columns
// mean. Typed interpretation of the rows happens in the pos package, which
// also reports missing required columns at load time.
//
// =============================================================================

package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is a named collection of rows read from one export file. It is built
// once at run start and read-only thereafter.
type Table struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> raw cell value.
	Rows []map[string]string

	// Source is the path the table was loaded from, kept for log messages.
	Source string
}

// Load reads an export file into a Table, choosing the parser by extension.
// ".xlsx" loads through excelize, everything else is treated as
// semicolon-delimited CSV.
func Load(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// LoadCSV reads a semicolon-delimited CSV file with a header row.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = ';'
	// The registers occasionally emit rows with trailing empty cells cut off.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return fromRecords(records, path)
}

// fromRecords builds a Table out of raw rows, the first of which is the
// header row.
func fromRecords(records [][]string, source string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty: %s", source)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmpty(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows, Source: source}, nil
}

// isEmpty reports whether a record contains only blank cells.
func isEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Require verifies that every named column exists in the table. A missing
// column is a fatal precondition for the run, surfaced here so failures are
// caught at load time rather than deep inside a record builder.
func (t *Table) Require(columns ...string) error {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}

	var missing []string
	for _, c := range columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required column(s): %s",
			filepath.Base(t.Source), strings.Join(missing, ", "))
	}
	return nil
}
