package validation

import (
	"fmt"
	"testing"

	"insightlens/domain/table"
	domval "insightlens/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEvaluator lets tests inject ordering markers and faults.
type stubEvaluator struct {
	name     string
	findings []domval.Finding
	err      error
	panics   bool
}

func (s stubEvaluator) Name() string { return s.name }

func (s stubEvaluator) Evaluate(table.Table, domval.Config) ([]domval.Finding, error) {
	if s.panics {
		panic(fmt.Sprintf("%s blew up", s.name))
	}
	return s.findings, s.err
}

func marker(rule string) domval.Finding {
	return domval.Finding{Rule: rule, Severity: domval.SeverityInfo, Details: map[string]any{}}
}

func TestDispatcherPreservesRegistrationOrder(t *testing.T) {
	d := NewDispatcherWith(
		stubEvaluator{name: "first", findings: []domval.Finding{marker("first")}},
		stubEvaluator{name: "second", findings: []domval.Finding{marker("second")}},
		stubEvaluator{name: "third", findings: []domval.Finding{marker("third")}},
	)
	findings := d.Run(table.Table{}, domval.DefaultConfig())
	require.Len(t, findings, 3)
	assert.Equal(t, "first", findings[0].Rule)
	assert.Equal(t, "second", findings[1].Rule)
	assert.Equal(t, "third", findings[2].Rule)
}

func TestDispatcherIsolatesEvaluatorError(t *testing.T) {
	d := NewDispatcherWith(
		stubEvaluator{name: "ok", findings: []domval.Finding{marker("ok")}},
		stubEvaluator{name: "broken", err: fmt.Errorf("unsupported column shape")},
		stubEvaluator{name: "after", findings: []domval.Finding{marker("after")}},
	)
	findings := d.Run(table.Table{}, domval.DefaultConfig())
	require.Len(t, findings, 3)

	fault := findings[1]
	assert.Equal(t, "broken", fault.Rule)
	assert.Equal(t, domval.SeverityError, fault.Severity)
	assert.Nil(t, fault.Column)
	assert.Equal(t, "unsupported column shape", fault.Details["evaluator_error"])

	assert.Equal(t, "after", findings[2].Rule, "rules after a fault still run")
}

func TestDispatcherRecoversPanic(t *testing.T) {
	d := NewDispatcherWith(
		stubEvaluator{name: "panicky", panics: true},
		stubEvaluator{name: "survivor", findings: []domval.Finding{marker("survivor")}},
	)
	findings := d.Run(table.Table{}, domval.DefaultConfig())
	require.Len(t, findings, 2)
	assert.Equal(t, domval.SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Details["evaluator_error"], "panicky blew up")
	assert.Equal(t, "survivor", findings[1].Rule)
}

func TestDispatcherFaultStillYieldsCompleteReport(t *testing.T) {
	// A faulting rule inserted among the real registry must not suppress
	// findings from the other evaluators.
	tbl := table.Table{Columns: []table.Column{
		{Name: "v", Type: table.TypeNumeric, Cells: []table.Cell{
			{Raw: "1"}, {Raw: "2"}, {Raw: "3"}, {Raw: "4"}, {Raw: "5"}, {Raw: "100"},
		}},
	}}
	evaluators := []Evaluator{MissingnessEvaluator{}, stubEvaluator{name: RuleTypeConsistency, panics: true}}
	evaluators = append(evaluators, DuplicateRowsEvaluator{}, NegativeValuesEvaluator{}, OutlierIQREvaluator{})

	findings := NewDispatcherWith(evaluators...).Run(tbl, domval.DefaultConfig())
	report := BuildReport(tbl, findings)

	assert.True(t, report.Summary.HasErrors)
	assert.Equal(t, 1, report.Summary.ByRule[RuleTypeConsistency].FindingCount)
	assert.Equal(t, domval.SeverityError, report.Summary.ByRule[RuleTypeConsistency].WorstSeverity)
	assert.Equal(t, 1, report.Summary.ByRule[RuleOutlierIQR].FindingCount, "other rules still report")
}

func TestDispatcherConcurrentMatchesSequential(t *testing.T) {
	tbl := table.Table{Columns: []table.Column{
		{Name: "v", Type: table.TypeNumeric, Cells: []table.Cell{
			{Raw: "-1"}, {Raw: "2"}, {Raw: "2"}, {Raw: "x"}, {Raw: "", Missing: true}, {Raw: "500"},
		}},
		{Name: "v2", Type: table.TypeNumeric, Cells: []table.Cell{
			{Raw: "1"}, {Raw: "1"}, {Raw: "1"}, {Raw: "1"}, {Raw: "1"}, {Raw: "1"},
		}},
	}}
	cfg := domval.DefaultConfig()
	cfg.MissingnessThreshold = 0.1

	sequential := NewDispatcher().Run(tbl, cfg)
	for i := 0; i < 20; i++ {
		concurrent := NewDispatcher().Concurrent().Run(tbl, cfg)
		assert.Equal(t, sequential, concurrent, "ordering must not depend on scheduling")
	}
}

func TestRegistryOrderIsFixed(t *testing.T) {
	names := make([]string, 0)
	for _, ev := range Registry() {
		names = append(names, ev.Name())
	}
	assert.Equal(t, []string{
		RuleMissingness,
		RuleTypeConsistency,
		RuleDuplicateRows,
		RuleNegativeValues,
		RuleOutlierIQR,
	}, names)
}
