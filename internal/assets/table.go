package assets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Asset table errors.
var (
	ErrUnsupportedTableFormat = errors.New("unsupported asset table format")
	ErrSheetNotFound          = errors.New("sheet not found")
)

// Table maps original asset paths to their replacements.
// It is read-only once loaded.
type Table struct {
	entries map[string]string
}

// NewTable builds a table from rows of (original, replacement).
// Rows missing either cell are ignored and later rows override earlier ones.
func NewTable(rows [][]string) *Table {
	t := &Table{entries: make(map[string]string, len(rows))}

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		original := strings.TrimSpace(row[0])
		mapped := strings.TrimSpace(row[1])

		if original == "" || mapped == "" {
			continue
		}

		t.entries[original] = mapped
	}

	return t
}

// Lookup returns the replacement for an original path.
func (t *Table) Lookup(original string) (string, bool) {
	if t == nil {
		return "", false
	}

	mapped, ok := t.entries[strings.TrimSpace(original)]

	return mapped, ok
}

// Len returns the number of mappings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.entries)
}

// LoadTable reads a table from an .xlsx or .csv file.
// For spreadsheets an empty sheet name selects the first sheet.
// No header row is skipped. An empty path yields an empty table.
func LoadTable(path, sheet string) (*Table, error) {
	if path == "" {
		return NewTable(nil), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadSpreadsheet(path, sheet)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTableFormat, path)
	}
}

func loadSpreadsheet(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}

		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSheetNotFound, sheet, err)
	}

	return NewTable(rows), nil
}

func loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadCSV(file)
}

// ReadCSV builds a table from CSV rows.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return NewTable(rows), nil
}
