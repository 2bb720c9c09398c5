package validation

import (
	"sort"
	"strconv"
	"strings"

	"insightlens/domain/table"
	"insightlens/domain/validation"
)

const maxExampleGroups = 3

// DuplicateRowsEvaluator partitions rows by equality of the configured
// column subset and reports a single table-wide finding when any partition
// holds more than one row. No finding is emitted when no duplicates exist.
type DuplicateRowsEvaluator struct{}

func (DuplicateRowsEvaluator) Name() string { return RuleDuplicateRows }

func (DuplicateRowsEvaluator) Evaluate(tbl table.Table, cfg validation.Config) ([]validation.Finding, error) {
	rowCount := tbl.RowCount()
	if rowCount == 0 {
		return nil, nil
	}

	subset := cfg.DuplicateSubset
	if subset == nil {
		subset = tbl.ColumnNames()
	}
	columns := make([]table.Column, 0, len(subset))
	for _, name := range subset {
		col, ok := tbl.Lookup(name)
		if !ok {
			continue // rejected earlier by config validation
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, nil
	}

	type group struct {
		firstRow int
		size     int
	}
	groups := make(map[string]*group, rowCount)
	for row := 0; row < rowCount; row++ {
		key := rowKey(columns, row)
		if g, ok := groups[key]; ok {
			g.size++
		} else {
			groups[key] = &group{firstRow: row, size: 1}
		}
	}

	duplicateGroupCount := 0
	duplicateRowCount := 0
	var firstRows []int
	for _, g := range groups {
		if g.size < 2 {
			continue
		}
		duplicateGroupCount++
		duplicateRowCount += g.size
		firstRows = append(firstRows, g.firstRow)
	}
	if duplicateGroupCount == 0 {
		return nil, nil
	}

	sort.Ints(firstRows)
	if len(firstRows) > maxExampleGroups {
		firstRows = firstRows[:maxExampleGroups]
	}
	exampleRowIndices := make([]any, len(firstRows))
	for i, row := range firstRows {
		exampleRowIndices[i] = row
	}

	return []validation.Finding{{
		Rule:     RuleDuplicateRows,
		Severity: validation.SeverityWarning,
		Column:   nil, // table-wide
		Details: map[string]any{
			"duplicate_group_count": duplicateGroupCount,
			"duplicate_row_count":   duplicateRowCount,
			"example_row_indices":   exampleRowIndices,
		},
	}}, nil
}

// rowKey builds an injective equality key for one row over the subset
// columns. Each cell is length-prefixed so raw values containing separator
// bytes cannot shift content across cell boundaries, and missing cells are
// distinguished from any literal value.
func rowKey(columns []table.Column, row int) string {
	var b strings.Builder
	for _, col := range columns {
		cell := col.Cells[row]
		if cell.Missing {
			b.WriteByte(0x00)
			continue
		}
		b.WriteByte(0x01)
		b.WriteString(strconv.Itoa(len(cell.Raw)))
		b.WriteByte(':')
		b.WriteString(cell.Raw)
	}
	return b.String()
}
