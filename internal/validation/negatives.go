package validation

import (
	"insightlens/domain/table"
	"insightlens/domain/validation"
)

const maxExampleRows = 3

// NegativeValuesEvaluator counts strictly negative values in the numeric
// columns in scope. The fraction is taken over the parsed numeric values of
// the column, the population the rule actually inspects.
type NegativeValuesEvaluator struct{}

func (NegativeValuesEvaluator) Name() string { return RuleNegativeValues }

func (NegativeValuesEvaluator) Evaluate(tbl table.Table, cfg validation.Config) ([]validation.Finding, error) {
	inScope := func(col table.Column) bool { return col.Type == table.TypeNumeric }
	if cfg.NegativeValueColumns != nil {
		scope := make(map[string]bool, len(cfg.NegativeValueColumns))
		for _, name := range cfg.NegativeValueColumns {
			scope[name] = true
		}
		inScope = func(col table.Column) bool {
			return col.Type == table.TypeNumeric && scope[col.Name]
		}
	}

	var findings []validation.Finding
	for _, col := range tbl.Columns {
		if !inScope(col) {
			continue
		}
		numeric := col.NumericCells()
		if len(numeric) == 0 {
			continue
		}

		negativeCount := 0
		exampleRowIndices := make([]any, 0, maxExampleRows)
		for _, nc := range numeric {
			if nc.Value >= 0 {
				continue
			}
			negativeCount++
			if len(exampleRowIndices) < maxExampleRows {
				exampleRowIndices = append(exampleRowIndices, nc.Row)
			}
		}
		if negativeCount == 0 {
			continue
		}

		findings = append(findings, validation.Finding{
			Rule:     RuleNegativeValues,
			Severity: validation.SeverityWarning,
			Column:   columnRef(col.Name),
			Details: map[string]any{
				"negative_count":      negativeCount,
				"negative_fraction":   float64(negativeCount) / float64(len(numeric)),
				"example_row_indices": exampleRowIndices,
			},
		})
	}
	return findings, nil
}
