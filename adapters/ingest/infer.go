package ingest

import (
	"insightlens/domain/table"
)

// Type inference thresholds, in the same ratio style the platform uses for
// coercion decisions elsewhere: a column earns a type when the share of
// non-missing values parsing as it clears the threshold.
const (
	numericThreshold  = 0.9
	booleanThreshold  = 0.9
	datetimeThreshold = 0.9

	// Low-cardinality numeric codes read better as categories.
	categoricalUniqueRatio = 0.1
	categoricalMaxUnique   = 20
)

// inferColumnType assigns a semantic type from the non-missing cell values.
func inferColumnType(cells []table.Cell) table.ColumnType {
	validCount := 0
	numericCount := 0
	booleanCount := 0
	datetimeCount := 0
	unique := make(map[string]bool)

	for _, cell := range cells {
		if cell.Missing {
			continue
		}
		validCount++
		unique[cell.Raw] = true
		if table.ParsesAsBoolean(cell.Raw) {
			booleanCount++
		}
		if table.ParsesAsNumeric(cell.Raw) {
			numericCount++
		}
		if table.ParsesAsDatetime(cell.Raw) {
			datetimeCount++
		}
	}

	if validCount == 0 {
		return table.TypeUnknown
	}

	n := float64(validCount)
	uniqueRatio := float64(len(unique)) / n

	// Boolean wins over numeric: "0"/"1" columns parse as both.
	if float64(booleanCount)/n >= booleanThreshold && len(unique) <= 2 {
		return table.TypeBoolean
	}
	if float64(numericCount)/n >= numericThreshold {
		if uniqueRatio < categoricalUniqueRatio && len(unique) <= categoricalMaxUnique {
			return table.TypeCategorical
		}
		return table.TypeNumeric
	}
	if float64(datetimeCount)/n >= datetimeThreshold {
		return table.TypeDatetime
	}
	return table.TypeCategorical
}
