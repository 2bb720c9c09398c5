package table

import (
	"strconv"
	"strings"
)

// ColumnType is the semantic type assigned to a column by ingestion.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeBoolean     ColumnType = "boolean"
	TypeDatetime    ColumnType = "datetime"
	TypeUnknown     ColumnType = "unknown"
)

// Cell is a single value in a column. Missing is decided upstream by the
// ingestion normalization; the validation engine never re-interprets raw
// missing markers.
type Cell struct {
	Raw     string
	Missing bool
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// NumericCell is a parsed numeric value together with its row index.
type NumericCell struct {
	Row   int
	Value float64
}

// NumericCells returns the cells that parse as float64, in row order.
// Missing cells and parse failures are skipped; parse failures belong to the
// type-consistency rule, not to the numeric rules.
func (c Column) NumericCells() []NumericCell {
	out := make([]NumericCell, 0, len(c.Cells))
	for i, cell := range c.Cells {
		if cell.Missing {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell.Raw), 64)
		if err != nil {
			continue
		}
		out = append(out, NumericCell{Row: i, Value: v})
	}
	return out
}

// MissingCount returns the number of cells tagged missing.
func (c Column) MissingCount() int {
	count := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			count++
		}
	}
	return count
}

// Table is an in-memory, column-ordered tabular dataset. It is treated as
// immutable for the duration of a validation run.
type Table struct {
	Columns []Column
}

// RowCount returns the number of rows (all columns share it).
func (t Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount returns the number of columns.
func (t Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in declared order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// ColumnTypes returns the name -> semantic type mapping.
func (t Table) ColumnTypes() map[string]string {
	types := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		types[col.Name] = string(col.Type)
	}
	return types
}

// Lookup returns the column with the given name.
func (t Table) Lookup(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether a column with the given name exists.
func (t Table) HasColumn(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}
