package spreadsheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSupportedExtension(t *testing.T) {
	require.True(t, SupportedExtension("roster.csv"))
	require.True(t, SupportedExtension("Roster.XLSX"))
	require.False(t, SupportedExtension("roster.pdf"))
	require.False(t, SupportedExtension("roster"))
}

func TestReadCSV(t *testing.T) {
	input := "name,reg_no,email\nAlice, 101,alice@example.com\nBob,102,bob@example.com\n"
	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "reg_no", "email"}, table.Headers)
	require.Len(t, table.Records, 2)
	// Leading space is trimmed by the reader.
	require.Equal(t, "101", table.Cell(table.Records[0], 1))
}

func TestReadCSVRaggedRows(t *testing.T) {
	input := "name,reg_no,email\nAlice,101\n"
	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	// Indexing past the short record yields an empty cell, not a panic.
	require.Equal(t, "", table.Cell(table.Records[0], 2))
}

func TestReadDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,reg_no,email\nAlice,101,alice@example.com\n"), 0o644))

	table, err := Read(csvPath)
	require.NoError(t, err)
	require.Len(t, table.Records, 1)

	_, err = Read(filepath.Join(dir, "roster.txt"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadXLSX(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "roster.xlsx")

	file := excelize.NewFile()
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "reg_no", "email"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", "101", "alice@example.com"}))
	require.NoError(t, file.SaveAs(xlsxPath))

	table, err := Read(xlsxPath)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "reg_no", "email"}, table.Headers)
	require.Len(t, table.Records, 1)
	require.Equal(t, "Alice", table.Cell(table.Records[0], 0))
}

func TestColumnIndex(t *testing.T) {
	table := &Table{Headers: []string{"name", "reg_no", "email"}}
	require.Equal(t, 1, table.ColumnIndex("reg_no"))
	require.Equal(t, -1, table.ColumnIndex("missing"))
}
