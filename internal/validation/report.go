package validation

import (
	"encoding/json"

	"insightlens/domain/table"
	"insightlens/domain/validation"
)

// Validate is the engine entry point. It never fails for data-content
// reasons: bad data produces findings. The only error is a configuration
// contract violation, reported before any evaluator runs.
func Validate(tbl table.Table, cfg validation.Config) (validation.Report, error) {
	if err := ValidateConfig(tbl, cfg); err != nil {
		return validation.Report{}, err
	}
	findings := NewDispatcher().Run(tbl, cfg)
	return BuildReport(tbl, findings), nil
}

// BuildReport merges findings and dataset metadata into the report value
// object. Finding order is preserved as produced by the dispatcher.
func BuildReport(tbl table.Table, findings []validation.Finding) validation.Report {
	if findings == nil {
		findings = []validation.Finding{}
	}
	return validation.Report{
		RowCount:    tbl.RowCount(),
		ColumnCount: tbl.ColumnCount(),
		ColumnTypes: tbl.ColumnTypes(),
		Findings:    findings,
		Summary:     Summarize(findings),
		GeneratedAt: validation.ReportVersion,
	}
}

// Summarize computes the per-rule and per-severity aggregates for a finding
// sequence. It is a pure projection: the summary of a report is always
// derivable from its findings alone.
func Summarize(findings []validation.Finding) validation.Summary {
	summary := validation.Summary{
		ByRule:         make(map[string]validation.RuleSummary),
		SeverityCounts: make(map[validation.Severity]int),
		TotalFindings:  len(findings),
	}
	for _, f := range findings {
		summary.SeverityCounts[f.Severity]++
		if f.Severity == validation.SeverityError {
			summary.HasErrors = true
		}

		rs := summary.ByRule[f.Rule]
		if rs.FindingCount == 0 {
			rs.WorstSeverity = f.Severity
		} else {
			rs.WorstSeverity = validation.Worst(rs.WorstSeverity, f.Severity)
		}
		rs.FindingCount++
		if name := f.ColumnName(); name != "" && !contains(rs.AffectedColumns, name) {
			rs.AffectedColumns = append(rs.AffectedColumns, name)
		}
		summary.ByRule[f.Rule] = rs
	}
	return summary
}

// Encode serializes a report to canonical JSON. Struct field order plus
// encoding/json's sorted map keys make the bytes stable for identical input.
func Encode(report validation.Report) ([]byte, error) {
	return json.Marshal(report)
}

// EncodeIndent serializes a report to human-inspectable canonical JSON.
func EncodeIndent(report validation.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// SummaryView projects a report onto its compact summary form. The result
// carries no information that is not in the full view.
func SummaryView(report validation.Report) validation.Summary {
	return Summarize(report.Findings)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
