package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"insightlens/domain/table"
	"insightlens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader turns CSV or single-sheet Excel content into a normalized table.
// MaxRows bounds the number of data rows accepted (inclusive); files beyond
// it are rejected rather than truncated.
type Reader struct {
	MaxRows int
}

// NewReader creates a reader with the given row limit. A non-positive limit
// falls back to the default of 100000 rows.
func NewReader(maxRows int) *Reader {
	if maxRows <= 0 {
		maxRows = 100000
	}
	return &Reader{MaxRows: maxRows}
}

// ReadFile reads and normalizes a file from disk, dispatching on extension.
func (r *Reader) ReadFile(path string) (table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return table.Table{}, errors.ParseError(fmt.Sprintf("cannot read %s", path), err)
	}
	return r.Read(filepath.Base(path), data)
}

// Read parses raw file bytes into a table. The filename selects the format:
// .xls/.xlsx go through excelize, .csv and extensionless content through the
// CSV parser. Anything else is rejected.
func (r *Reader) Read(filename string, data []byte) (table.Table, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls", ".xlsx":
		rows, err = readExcelRows(data)
	case ".csv", "":
		rows, err = readCSVRows(data)
	default:
		return table.Table{}, errors.ParseError(fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), nil)
	}
	if err != nil {
		return table.Table{}, err
	}

	if len(rows) < 2 {
		return table.Table{}, errors.ParseError("file must have a header row and at least one data row", nil)
	}
	if len(rows)-1 > r.MaxRows {
		return table.Table{}, errors.MaxRowsExceeded(
			fmt.Sprintf("file has %d rows which exceeds limit %d", len(rows)-1, r.MaxRows))
	}

	return buildTable(rows), nil
}

func readCSVRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are padded later
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to parse CSV", err)
	}
	return rows, nil
}

func readExcelRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ParseError("failed to open Excel file", err)
	}
	defer f.Close()

	// First sheet only, matching the single-table contract.
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("Excel file has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	return rows, nil
}

// buildTable converts raw string rows into a typed, normalized table:
// snake_case headers, trimmed cells, missing markers tagged, column types
// inferred from the surviving values.
func buildTable(rows [][]string) table.Table {
	headers := normalizeHeaders(rows[0])
	dataRows := rows[1:]

	columns := make([]table.Column, len(headers))
	for colIdx, name := range headers {
		cells := make([]table.Cell, len(dataRows))
		for rowIdx, row := range dataRows {
			raw := ""
			if colIdx < len(row) {
				raw = strings.TrimSpace(row[colIdx])
			}
			cells[rowIdx] = table.Cell{Raw: raw, Missing: IsMissingMarker(raw)}
		}
		columns[colIdx] = table.Column{
			Name:  name,
			Type:  inferColumnType(cells),
			Cells: cells,
		}
	}
	return table.Table{Columns: columns}
}
