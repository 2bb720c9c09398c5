package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"insightlens/adapters/ingest"
	domval "insightlens/domain/validation"
	"insightlens/internal/profiling"
	"insightlens/internal/reporting"
	"insightlens/internal/validation"
)

// One-shot local report generation: read a CSV/Excel file, run the
// validation engine and print the report without starting the server.
func main() {
	var (
		file        = flag.String("file", "", "path to the CSV or Excel file to validate")
		format      = flag.String("format", "json", "output format: json, markdown, html or summary")
		maxRows     = flag.Int("max-rows", 100000, "maximum number of data rows accepted")
		missingness = flag.Float64("missingness-threshold", 0.5, "missing fraction required to flag a column")
		missingErr  = flag.Float64("missingness-error-threshold", 0.9, "missing fraction that escalates to error")
		multiplier  = flag.Float64("iqr-multiplier", 1.5, "IQR multiplier for outlier fences")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	tbl, err := ingest.NewReader(*maxRows).ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *file, err)
	}

	cfg := domval.DefaultConfig()
	cfg.MissingnessThreshold = *missingness
	cfg.MissingnessErrorThreshold = *missingErr
	cfg.OutlierIQRMultiplier = *multiplier

	report, err := validation.Validate(tbl, cfg)
	if err != nil {
		log.Fatalf("validation failed: %v", err)
	}
	report.ColumnProfiles = profiling.ProfileTable(tbl)

	name := filepath.Base(*file)
	switch *format {
	case "json":
		out, err := validation.EncodeIndent(report)
		if err != nil {
			log.Fatalf("failed to encode report: %v", err)
		}
		fmt.Println(string(out))
	case "markdown":
		fmt.Print(reporting.RenderMarkdown(name, report))
	case "html":
		page, err := reporting.RenderHTML(name, report)
		if err != nil {
			log.Fatalf("failed to render report: %v", err)
		}
		fmt.Print(page)
	case "summary":
		summary := validation.SummaryView(report)
		fmt.Printf("%s: %d rows, %d columns, %d finding(s), has_errors=%v\n",
			name, report.RowCount, report.ColumnCount, summary.TotalFindings, summary.HasErrors)
		rules := make([]string, 0, len(summary.ByRule))
		for rule := range summary.ByRule {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			rs := summary.ByRule[rule]
			fmt.Printf("  %s: %d (%s)\n", rule, rs.FindingCount, rs.WorstSeverity)
		}
	default:
		log.Fatalf("unknown format %q", *format)
	}
}
