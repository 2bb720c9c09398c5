package ingest

import (
	"strings"
	"testing"

	"insightlens/domain/table"
	"insightlens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Order ID,Amount,isActive",
		"1,10.5,true",
		"2,NA,false",
		"3,-4,true",
	}, "\n")

	tbl, err := NewReader(0).Read("orders.csv", []byte(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "amount", "is_active"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())

	amount, ok := tbl.Lookup("amount")
	require.True(t, ok)
	assert.Equal(t, table.TypeNumeric, amount.Type)
	assert.True(t, amount.Cells[1].Missing, "NA is a missing marker")

	active, ok := tbl.Lookup("is_active")
	require.True(t, ok)
	assert.Equal(t, table.TypeBoolean, active.Type)
}

func TestReadCSVTrimsAndTagsMissing(t *testing.T) {
	csvData := "v\n 10 \nnull\nNone\nN/A\n\\n\n20"
	tbl, err := NewReader(0).Read("data.csv", []byte(csvData))
	require.NoError(t, err)

	col, ok := tbl.Lookup("v")
	require.True(t, ok)
	assert.Equal(t, "10", col.Cells[0].Raw, "cells are trimmed")
	assert.Equal(t, 4, col.MissingCount())
}

func TestReadCSVRaggedRowsPadAsMissing(t *testing.T) {
	csvData := "a,b\n1,2\n3"
	tbl, err := NewReader(0).Read("data.csv", []byte(csvData))
	require.NoError(t, err)

	b, ok := tbl.Lookup("b")
	require.True(t, ok)
	assert.False(t, b.Cells[0].Missing)
	assert.True(t, b.Cells[1].Missing)
}

func TestReadHeaderNormalization(t *testing.T) {
	csvData := "Amount,amount, ,Amount\n1,2,3,4"
	tbl, err := NewReader(0).Read("data.csv", []byte(csvData))
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "amount_2", "column_2", "amount_3"}, tbl.ColumnNames())
}

func TestReadHeaderSuffixNeverCollidesWithLiteral(t *testing.T) {
	// A literal "amount_2" header must not be reused as a duplicate suffix.
	csvData := "amount,amount_2,amount\n1,2,3"
	tbl, err := NewReader(0).Read("data.csv", []byte(csvData))
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "amount_2", "amount_3"}, tbl.ColumnNames())

	seen := make(map[string]bool)
	for _, name := range tbl.ColumnNames() {
		require.False(t, seen[name], "duplicate column name %q", name)
		seen[name] = true
	}
	assert.Len(t, tbl.ColumnTypes(), tbl.ColumnCount())
}

func TestReadRejectsUnsupportedExtension(t *testing.T) {
	_, err := NewReader(0).Read("data.parquet", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeParseError))
}

func TestReadRequiresHeaderAndData(t *testing.T) {
	_, err := NewReader(0).Read("data.csv", []byte("only_header\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeParseError))
}

func TestReadEnforcesMaxRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("v\n")
	for i := 0; i < 11; i++ {
		sb.WriteString("1\n")
	}
	_, err := NewReader(10).Read("data.csv", []byte(sb.String()))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeMaxRowsExceeded))

	_, err = NewReader(11).Read("data.csv", []byte(sb.String()))
	assert.NoError(t, err)
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Score"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"alice", 10}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"bob", 20}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, readErr := NewReader(0).Read("scores.xlsx", buf.Bytes())
	require.NoError(t, readErr)
	assert.Equal(t, []string{"name", "score"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.RowCount())

	score, ok := tbl.Lookup("score")
	require.True(t, ok)
	assert.Equal(t, table.TypeNumeric, score.Type)
}

func TestReadExcelRejectsGarbage(t *testing.T) {
	_, err := NewReader(0).Read("data.xlsx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeParseError))
}

func TestInferColumnType(t *testing.T) {
	mkCells := func(raws ...string) []table.Cell {
		cells := make([]table.Cell, len(raws))
		for i, raw := range raws {
			cells[i] = table.Cell{Raw: raw, Missing: IsMissingMarker(raw)}
		}
		return cells
	}

	cases := []struct {
		name string
		raws []string
		want table.ColumnType
	}{
		{"numeric", []string{"1", "2.5", "-3", "4e2", "5", "6", "7", "8", "9", "10", "11"}, table.TypeNumeric},
		{"numeric with noise under threshold", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "oops", "11"}, table.TypeNumeric},
		{"boolean", []string{"true", "false", "true"}, table.TypeBoolean},
		{"boolean yes/no", []string{"yes", "no", "yes", "no"}, table.TypeBoolean},
		{"datetime", []string{"2024-01-01", "2024-02-15", "2024-03-31"}, table.TypeDatetime},
		{"categorical", []string{"red", "green", "blue", "red"}, table.TypeCategorical},
		{"all missing", []string{"", "na", "null"}, table.TypeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inferColumnType(mkCells(tc.raws...)))
		})
	}
}

func TestInferLowCardinalityCodesAreCategorical(t *testing.T) {
	raws := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		raws = append(raws, []string{"1", "2", "3"}[i%3])
	}
	cells := make([]table.Cell, len(raws))
	for i, raw := range raws {
		cells[i] = table.Cell{Raw: raw}
	}
	assert.Equal(t, table.TypeCategorical, inferColumnType(cells))
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Order ID":     "order_id",
		"isActive":     "is_active",
		"total$amount": "total_amount",
		"__weird__":    "weird",
		"ALLCAPS":      "allcaps",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in), "input %q", in)
	}
}
