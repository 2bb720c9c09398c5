package validation

import (
	"math"
	"sort"

	"insightlens/domain/table"
	"insightlens/domain/validation"
)

// minOutlierSamples is the minimum number of non-missing numeric values a
// column needs before quartiles are meaningful; smaller columns are skipped.
const minOutlierSamples = 4

// OutlierIQREvaluator flags numeric values falling strictly outside the
// Tukey fences [Q1 - m*IQR, Q3 + m*IQR]. When IQR is zero the fences
// collapse to [Q1, Q3], so any deviation from a constant column is flagged.
type OutlierIQREvaluator struct{}

func (OutlierIQREvaluator) Name() string { return RuleOutlierIQR }

func (OutlierIQREvaluator) Evaluate(tbl table.Table, cfg validation.Config) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, col := range tbl.Columns {
		if col.Type != table.TypeNumeric {
			continue
		}
		numeric := col.NumericCells()
		if len(numeric) < minOutlierSamples {
			continue
		}

		values := make([]float64, len(numeric))
		for i, nc := range numeric {
			values[i] = nc.Value
		}
		q1 := quantileLinear(values, 0.25)
		q3 := quantileLinear(values, 0.75)
		iqr := q3 - q1
		lowerFence := q1 - cfg.OutlierIQRMultiplier*iqr
		upperFence := q3 + cfg.OutlierIQRMultiplier*iqr

		outlierCount := 0
		exampleRowIndices := make([]any, 0, maxExampleRows)
		for _, nc := range numeric {
			if nc.Value >= lowerFence && nc.Value <= upperFence {
				continue
			}
			outlierCount++
			if len(exampleRowIndices) < maxExampleRows {
				exampleRowIndices = append(exampleRowIndices, nc.Row)
			}
		}
		if outlierCount == 0 {
			continue
		}

		findings = append(findings, validation.Finding{
			Rule:     RuleOutlierIQR,
			Severity: validation.SeverityWarning,
			Column:   columnRef(col.Name),
			Details: map[string]any{
				"q1":                  q1,
				"q3":                  q3,
				"iqr":                 iqr,
				"lower_fence":         lowerFence,
				"upper_fence":         upperFence,
				"outlier_count":       outlierCount,
				"outlier_fraction":    float64(outlierCount) / float64(len(numeric)),
				"example_row_indices": exampleRowIndices,
			},
		})
	}
	return findings, nil
}

// quantileLinear estimates the p-quantile with linear interpolation between
// order statistics at position (n-1)*p. This is the normative estimator for
// the outlier fences; the percentile helpers in the stats libraries use
// nearest-rank variants and would shift the fences.
func quantileLinear(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
