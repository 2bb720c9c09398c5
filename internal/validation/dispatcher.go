package validation

import (
	"fmt"

	"insightlens/domain/table"
	"insightlens/domain/validation"
	"insightlens/internal"

	"golang.org/x/sync/errgroup"
)

// Dispatcher runs the registered evaluators against a table. Each evaluator
// is isolated: a returned error or a recovered panic becomes one synthetic
// error-severity finding for that rule and the run continues, so callers
// always receive a complete report.
type Dispatcher struct {
	evaluators []Evaluator
	concurrent bool
	logger     *internal.Logger
}

// NewDispatcher creates a dispatcher over the default registry.
func NewDispatcher() *Dispatcher {
	return NewDispatcherWith(Registry()...)
}

// NewDispatcherWith creates a dispatcher over an explicit evaluator set.
// The argument order becomes the registration order.
func NewDispatcherWith(evaluators ...Evaluator) *Dispatcher {
	return &Dispatcher{
		evaluators: evaluators,
		logger:     internal.DefaultLogger,
	}
}

// Concurrent switches the dispatcher to parallel execution. Results are
// merged by registration index, so output is identical to sequential mode
// regardless of scheduling.
func (d *Dispatcher) Concurrent() *Dispatcher {
	d.concurrent = true
	return d
}

// Run executes every evaluator and returns their findings concatenated in
// registration order.
func (d *Dispatcher) Run(tbl table.Table, cfg validation.Config) []validation.Finding {
	results := make([][]validation.Finding, len(d.evaluators))

	if d.concurrent {
		var g errgroup.Group
		for i, ev := range d.evaluators {
			g.Go(func() error {
				results[i] = d.runOne(ev, tbl, cfg)
				return nil
			})
		}
		// Goroutines never return errors; faults are already findings.
		_ = g.Wait()
	} else {
		for i, ev := range d.evaluators {
			results[i] = d.runOne(ev, tbl, cfg)
		}
	}

	var findings []validation.Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	return findings
}

// runOne executes a single evaluator, converting any fault into a synthetic
// finding so the run as a whole stays total.
func (d *Dispatcher) runOne(ev Evaluator, tbl table.Table, cfg validation.Config) (findings []validation.Finding) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("evaluator %s panicked: %v", ev.Name(), r)
			findings = []validation.Finding{faultFinding(ev.Name(), fmt.Sprintf("%v", r))}
		}
	}()

	findings, err := ev.Evaluate(tbl, cfg)
	if err != nil {
		d.logger.Error("evaluator %s failed: %v", ev.Name(), err)
		return []validation.Finding{faultFinding(ev.Name(), err.Error())}
	}
	return findings
}

func faultFinding(rule, message string) validation.Finding {
	return validation.Finding{
		Rule:     rule,
		Severity: validation.SeverityError,
		Column:   nil,
		Details: map[string]any{
			"evaluator_error": message,
		},
	}
}
