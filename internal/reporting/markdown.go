package reporting

import (
	"fmt"
	"sort"
	"strings"

	"insightlens/domain/validation"
)

// RenderMarkdown produces the human-readable report for a validation run.
// Section and row order is fixed by construction so the output is stable for
// identical reports.
func RenderMarkdown(filename string, report validation.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# InsightLens Report\n\n")
	if filename != "" {
		fmt.Fprintf(&b, "Dataset: `%s`\n\n", filename)
	}
	fmt.Fprintf(&b, "Rows: %d, Columns: %d\n\n", report.RowCount, report.ColumnCount)

	b.WriteString("## Column types\n\n")
	b.WriteString("| Column | Type |\n|---|---|\n")
	for _, name := range sortedKeys(report.ColumnTypes) {
		fmt.Fprintf(&b, "| %s | %s |\n", name, report.ColumnTypes[name])
	}
	b.WriteString("\n")

	b.WriteString("## Summary\n\n")
	if report.Summary.TotalFindings == 0 {
		b.WriteString("No issues detected.\n\n")
	} else {
		fmt.Fprintf(&b, "%d finding(s)", report.Summary.TotalFindings)
		if report.Summary.HasErrors {
			b.WriteString(", including errors")
		}
		b.WriteString(".\n\n")
		b.WriteString("| Rule | Findings | Worst severity | Affected columns |\n|---|---|---|---|\n")
		for _, rule := range ruleOrder(report.Findings) {
			rs := report.Summary.ByRule[rule]
			fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
				rule, rs.FindingCount, rs.WorstSeverity, strings.Join(rs.AffectedColumns, ", "))
		}
		b.WriteString("\n")
	}

	if len(report.Findings) > 0 {
		b.WriteString("## Findings\n\n")
		for _, f := range report.Findings {
			scope := "table-wide"
			if f.Column != nil {
				scope = "column `" + *f.Column + "`"
			}
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n", f.Rule, f.Severity, scope, detailLine(f.Details))
		}
		b.WriteString("\n")
	}

	if len(report.ColumnProfiles) > 0 {
		b.WriteString("## Numeric column profiles\n\n")
		b.WriteString("| Column | Count | Mean | Std dev | Min | Q25 | Median | Q75 | Max |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
		names := make([]string, 0, len(report.ColumnProfiles))
		for name := range report.ColumnProfiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := report.ColumnProfiles[name]
			fmt.Fprintf(&b, "| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				name, p.Count, p.Mean, p.StdDev, p.Min, p.Q25, p.Median, p.Q75, p.Max)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\nReport format: %s\n", report.GeneratedAt)
	return b.String()
}

// detailLine flattens a finding's details map into "key=value" pairs with
// sorted keys.
func detailLine(details map[string]any) string {
	parts := make([]string, 0, len(details))
	for _, key := range sortedAnyKeys(details) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, details[key]))
	}
	return strings.Join(parts, ", ")
}

// ruleOrder returns rule names in order of first appearance in the finding
// sequence, which is the evaluator registration order.
func ruleOrder(findings []validation.Finding) []string {
	var order []string
	seen := make(map[string]bool)
	for _, f := range findings {
		if !seen[f.Rule] {
			seen[f.Rule] = true
			order = append(order, f.Rule)
		}
	}
	return order
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
