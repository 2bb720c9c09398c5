package validation

import (
	"encoding/json"
	"testing"

	"insightlens/domain/table"
	domval "insightlens/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messyTable() table.Table {
	return table.Table{Columns: []table.Column{
		numericCol("amount", "1", "2", "3", "4", "5", "100", "-7", "bad", "", ""),
		col("label", table.TypeCategorical, "a", "b", "a", "c", "a", "b", "b", "c", "a", "b"),
		col("flag", table.TypeBoolean, "true", "false", "true", "false", "true", "false", "true", "false", "true", "false"),
	}}
}

func TestValidateIsDeterministic(t *testing.T) {
	tbl := messyTable()
	cfg := domval.DefaultConfig()
	cfg.MissingnessThreshold = 0.1
	cfg.DuplicateSubset = []string{"label", "flag"}

	first, err := Validate(tbl, cfg)
	require.NoError(t, err)
	second, err := Validate(tbl, cfg)
	require.NoError(t, err)

	firstJSON, err := Encode(first)
	require.NoError(t, err)
	secondJSON, err := Encode(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON), "identical input must give byte-identical JSON")
}

func TestReportWireShape(t *testing.T) {
	report, err := Validate(messyTable(), domval.DefaultConfig())
	require.NoError(t, err)

	encoded, err := Encode(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	// Contract fields; removals would break consumers.
	assert.Contains(t, decoded, "row_count")
	assert.Contains(t, decoded, "column_count")
	assert.Contains(t, decoded, "column_types")
	assert.Contains(t, decoded, "findings")
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "generated_at")

	assert.Equal(t, float64(10), decoded["row_count"])
	assert.Equal(t, float64(3), decoded["column_count"])
	assert.Equal(t, domval.ReportVersion, decoded["generated_at"])

	types := decoded["column_types"].(map[string]any)
	assert.Equal(t, "numeric", types["amount"])
	assert.Equal(t, "categorical", types["label"])

	summary := decoded["summary"].(map[string]any)
	assert.Contains(t, summary, "by_rule")
	assert.Contains(t, summary, "has_errors")

	for _, raw := range decoded["findings"].([]any) {
		finding := raw.(map[string]any)
		assert.Contains(t, finding, "rule")
		assert.Contains(t, finding, "severity")
		assert.Contains(t, finding, "column", "column must be present, null for table-wide findings")
		assert.Contains(t, finding, "details")
	}
}

func TestTableWideFindingSerializesNullColumn(t *testing.T) {
	tbl := table.Table{Columns: []table.Column{
		col("x", table.TypeCategorical, "a", "a"),
	}}
	report, err := Validate(tbl, domval.DefaultConfig())
	require.NoError(t, err)

	encoded, err := Encode(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"column":null`)
}

func TestSummaryViewIsPureProjection(t *testing.T) {
	cfg := domval.DefaultConfig()
	cfg.MissingnessThreshold = 0.1
	report, err := Validate(messyTable(), cfg)
	require.NoError(t, err)

	// Round-trip the full view, then project: the result must equal the
	// summary carried in the report.
	encoded, err := Encode(report)
	require.NoError(t, err)
	var decoded domval.Report
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, report.Summary, SummaryView(decoded))
	assert.Equal(t, report.Summary, SummaryView(report))
}

func TestSummarize(t *testing.T) {
	column := "c"
	findings := []domval.Finding{
		{Rule: "r1", Severity: domval.SeverityWarning, Column: &column, Details: map[string]any{}},
		{Rule: "r1", Severity: domval.SeverityError, Column: &column, Details: map[string]any{}},
		{Rule: "r2", Severity: domval.SeverityInfo, Details: map[string]any{}},
	}
	summary := Summarize(findings)

	assert.Equal(t, 3, summary.TotalFindings)
	assert.True(t, summary.HasErrors)
	assert.Equal(t, 1, summary.SeverityCounts[domval.SeverityInfo])
	assert.Equal(t, 1, summary.SeverityCounts[domval.SeverityWarning])
	assert.Equal(t, 1, summary.SeverityCounts[domval.SeverityError])

	r1 := summary.ByRule["r1"]
	assert.Equal(t, 2, r1.FindingCount)
	assert.Equal(t, domval.SeverityError, r1.WorstSeverity)
	assert.Equal(t, []string{"c"}, r1.AffectedColumns)

	r2 := summary.ByRule["r2"]
	assert.Equal(t, 1, r2.FindingCount)
	assert.Equal(t, domval.SeverityInfo, r2.WorstSeverity)
	assert.Empty(t, r2.AffectedColumns)
}

func TestBuildReportEmptyFindings(t *testing.T) {
	tbl := table.Table{Columns: []table.Column{numericCol("v", "1", "2", "3", "4")}}
	report := BuildReport(tbl, nil)

	assert.NotNil(t, report.Findings, "findings serialize as [], not null")
	assert.Equal(t, 0, report.Summary.TotalFindings)
	assert.False(t, report.Summary.HasErrors)

	encoded, err := Encode(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"findings":[]`)
}
