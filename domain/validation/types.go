package validation

// Severity is the ordinal importance of a finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank returns the ordinal position of a severity (info < warning < error).
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return -1
	}
}

// Worst returns the higher-ranked of two severities.
func Worst(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Finding is one detected issue instance produced by a rule evaluator.
// Column is nil for table-wide findings (e.g. duplicate rows). Details holds
// rule-specific JSON-primitive values with keys fixed per rule.
type Finding struct {
	Rule     string         `json:"rule"`
	Severity Severity       `json:"severity"`
	Column   *string        `json:"column"`
	Details  map[string]any `json:"details"`
}

// ColumnName returns the affected column name, or "" for table-wide findings.
func (f Finding) ColumnName() string {
	if f.Column == nil {
		return ""
	}
	return *f.Column
}

// Config is the immutable per-run validation configuration. It is passed by
// value so concurrent runs with different settings never interfere.
type Config struct {
	// MissingnessThreshold is the minimum missing fraction for a column to
	// be reported.
	MissingnessThreshold float64
	// MissingnessErrorThreshold escalates a missingness finding to error.
	MissingnessErrorThreshold float64
	// OutlierIQRMultiplier scales the interquartile range when computing
	// outlier fences.
	OutlierIQRMultiplier float64
	// DuplicateSubset lists the columns considered for row equality.
	// Nil means all columns.
	DuplicateSubset []string
	// NegativeValueColumns lists the columns checked for negative values.
	// Nil means all numeric columns.
	NegativeValueColumns []string
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MissingnessThreshold:      0.5,
		MissingnessErrorThreshold: 0.9,
		OutlierIQRMultiplier:      1.5,
	}
}

// RuleSummary is the per-rule aggregate used by the compact summary view.
type RuleSummary struct {
	FindingCount    int      `json:"finding_count"`
	WorstSeverity   Severity `json:"worst_severity"`
	AffectedColumns []string `json:"affected_columns"`
}

// Summary holds aggregate counts over all findings in a report.
type Summary struct {
	ByRule         map[string]RuleSummary `json:"by_rule"`
	SeverityCounts map[Severity]int       `json:"severity_counts"`
	TotalFindings  int                    `json:"total_findings"`
	HasErrors      bool                   `json:"has_errors"`
}

// ColumnProfile is the descriptive-statistics profile of a numeric column.
// Attached to reports as an additive field; not part of the core contract.
type ColumnProfile struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// ReportVersion is the logical generated_at stamp. It identifies the report
// format revision rather than wall-clock time, so serialized reports are
// byte-identical across runs on identical input.
const ReportVersion = "insightlens/1"

// Report is the full validation result for one table.
// Field order fixes the canonical JSON key order.
type Report struct {
	RowCount       int                      `json:"row_count"`
	ColumnCount    int                      `json:"column_count"`
	ColumnTypes    map[string]string        `json:"column_types"`
	Findings       []Finding                `json:"findings"`
	Summary        Summary                  `json:"summary"`
	ColumnProfiles map[string]ColumnProfile `json:"column_profiles,omitempty"`
	GeneratedAt    string                   `json:"generated_at"`
}
