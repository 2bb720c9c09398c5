package validation

import (
	"insightlens/domain/table"
	"insightlens/domain/validation"
)

const maxExampleValues = 3

// TypeConsistencyEvaluator flags declared numeric or datetime columns that
// contain non-missing values failing to parse as the declared type. Example
// values are the first offenders in row order, never sampled.
type TypeConsistencyEvaluator struct{}

func (TypeConsistencyEvaluator) Name() string { return RuleTypeConsistency }

func (TypeConsistencyEvaluator) Evaluate(tbl table.Table, cfg validation.Config) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, col := range tbl.Columns {
		var parses func(string) bool
		switch col.Type {
		case table.TypeNumeric:
			parses = table.ParsesAsNumeric
		case table.TypeDatetime:
			parses = table.ParsesAsDatetime
		default:
			continue
		}

		offendingCount := 0
		exampleValues := make([]any, 0, maxExampleValues)
		for _, cell := range col.Cells {
			if cell.Missing || parses(cell.Raw) {
				continue
			}
			offendingCount++
			if len(exampleValues) < maxExampleValues {
				exampleValues = append(exampleValues, cell.Raw)
			}
		}
		if offendingCount == 0 {
			continue
		}

		findings = append(findings, validation.Finding{
			Rule:     RuleTypeConsistency,
			Severity: validation.SeverityWarning,
			Column:   columnRef(col.Name),
			Details: map[string]any{
				"declared_type":   string(col.Type),
				"offending_count": offendingCount,
				"example_values":  exampleValues,
			},
		})
	}
	return findings, nil
}
