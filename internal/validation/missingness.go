package validation

import (
	"insightlens/domain/table"
	"insightlens/domain/validation"
)

// MissingnessEvaluator flags columns whose missing fraction meets the
// configured threshold. Severity escalates to error above the error
// threshold. Columns are evaluated in declared table order.
type MissingnessEvaluator struct{}

func (MissingnessEvaluator) Name() string { return RuleMissingness }

func (MissingnessEvaluator) Evaluate(tbl table.Table, cfg validation.Config) ([]validation.Finding, error) {
	rowCount := tbl.RowCount()
	if rowCount == 0 {
		return nil, nil
	}

	var findings []validation.Finding
	for _, col := range tbl.Columns {
		missingCount := col.MissingCount()
		missingFraction := float64(missingCount) / float64(rowCount)
		if missingFraction < cfg.MissingnessThreshold {
			continue
		}

		severity := validation.SeverityWarning
		if missingFraction >= cfg.MissingnessErrorThreshold {
			severity = validation.SeverityError
		}

		findings = append(findings, validation.Finding{
			Rule:     RuleMissingness,
			Severity: severity,
			Column:   columnRef(col.Name),
			Details: map[string]any{
				"missing_count":    missingCount,
				"missing_fraction": missingFraction,
				"row_count":        rowCount,
			},
		})
	}
	return findings, nil
}
