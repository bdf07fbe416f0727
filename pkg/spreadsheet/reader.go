package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a parsed tabular file: one header row plus data records. Records
// may be ragged; consumers index them against Headers defensively.
type Table struct {
	Headers []string
	Records [][]string
}

// ErrUnsupportedFormat is returned for file extensions other than .csv/.xlsx.
var ErrUnsupportedFormat = fmt.Errorf("unsupported file format, use .csv or .xlsx")

// SupportedExtension reports whether the file name has a readable extension.
func SupportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	default:
		return false
	}
}

// Read parses the file at path based on its extension.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer file.Close() //nolint:errcheck
		return ReadCSV(file)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadCSV parses CSV content from r.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return tableFromRows(rows), nil
}

func readXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer file.Close() //nolint:errcheck

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	return &Table{Headers: rows[0], Records: rows[1:]}
}

// Cell returns the record value under the named header, or "" when the record
// is shorter than the header row.
func (t *Table) Cell(record []string, column int) string {
	if column < 0 || column >= len(record) {
		return ""
	}
	return record[column]
}

// ColumnIndex returns the position of header in Headers, or -1.
func (t *Table) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}
