package profiling

import (
	"insightlens/domain/table"
	"insightlens/domain/validation"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// minProfileSamples is the smallest column worth profiling; below it the
// moment estimates are noise.
const minProfileSamples = 2

// ProfileTable computes a descriptive profile for every numeric column with
// enough parsed values. Keys are column names; columns without a profile are
// absent from the map.
func ProfileTable(tbl table.Table) map[string]validation.ColumnProfile {
	profiles := make(map[string]validation.ColumnProfile)
	for _, col := range tbl.Columns {
		if col.Type != table.TypeNumeric {
			continue
		}
		numeric := col.NumericCells()
		if len(numeric) < minProfileSamples {
			continue
		}
		values := make([]float64, len(numeric))
		for i, nc := range numeric {
			values[i] = nc.Value
		}
		profiles[col.Name] = profileColumn(values)
	}
	if len(profiles) == 0 {
		return nil
	}
	return profiles
}

func profileColumn(values []float64) validation.ColumnProfile {
	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviationSample(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	// Constant or tiny columns have undefined higher moments; report zero
	// rather than NaN, which would poison JSON encoding. The bias-corrected
	// estimators need at least 4 samples.
	skewness := 0.0
	kurtosis := 0.0
	if stdDev > 0 && len(values) >= 4 {
		skewness = stat.Skew(values, nil)
		kurtosis = stat.ExKurtosis(values, nil)
	}

	return validation.ColumnProfile{
		Count:    len(values),
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Q25:      q25,
		Median:   median,
		Q75:      q75,
		Max:      max,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}
