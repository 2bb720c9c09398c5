package validation

import (
	"fmt"

	"insightlens/domain/table"
	"insightlens/domain/validation"
	"insightlens/internal/errors"
)

// Rule identifiers. These are part of the report compatibility contract.
const (
	RuleMissingness     = "missingness"
	RuleTypeConsistency = "type_consistency"
	RuleDuplicateRows   = "duplicate_rows"
	RuleNegativeValues  = "negative_values"
	RuleOutlierIQR      = "outlier_iqr"
)

// Evaluator is the contract every rule must satisfy. Evaluators are pure:
// they read the table, never mutate it, and never depend on another rule's
// output, so the dispatcher may run them in any order or in parallel.
type Evaluator interface {
	Name() string
	Evaluate(tbl table.Table, cfg validation.Config) ([]validation.Finding, error)
}

// Registry returns the closed, ordered set of evaluators. Registration order
// fixes finding order in every report.
func Registry() []Evaluator {
	return []Evaluator{
		MissingnessEvaluator{},
		TypeConsistencyEvaluator{},
		DuplicateRowsEvaluator{},
		NegativeValuesEvaluator{},
		OutlierIQREvaluator{},
	}
}

// ValidateConfig checks the configuration contract against a table. A
// violation is reported to the caller as a CONFIG_INVALID error; validation
// does not proceed.
func ValidateConfig(tbl table.Table, cfg validation.Config) error {
	if cfg.MissingnessThreshold < 0 || cfg.MissingnessThreshold > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("missingness_threshold %v outside [0,1]", cfg.MissingnessThreshold))
	}
	if cfg.MissingnessErrorThreshold < 0 || cfg.MissingnessErrorThreshold > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("missingness_error_threshold %v outside [0,1]", cfg.MissingnessErrorThreshold))
	}
	if cfg.OutlierIQRMultiplier < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("outlier_iqr_multiplier %v is negative", cfg.OutlierIQRMultiplier))
	}
	for _, name := range cfg.DuplicateSubset {
		if !tbl.HasColumn(name) {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate_subset references unknown column %q", name))
		}
	}
	for _, name := range cfg.NegativeValueColumns {
		if !tbl.HasColumn(name) {
			return errors.ConfigInvalid(fmt.Sprintf("negative_value_columns references unknown column %q", name))
		}
	}
	return nil
}

// columnRef returns a pointer suitable for Finding.Column.
func columnRef(name string) *string {
	return &name
}
