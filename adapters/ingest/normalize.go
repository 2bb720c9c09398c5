package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// missingMarkers are the textual encodings standardized to "missing" during
// ingestion. Matching is case-insensitive; the empty string is always missing.
var missingMarkers = map[string]bool{
	"na":   true,
	"n/a":  true,
	"none": true,
	"null": true,
	`\n`:   true,
	"":     true,
}

// IsMissingMarker reports whether a trimmed raw value is a recognized
// missing-value encoding.
func IsMissingMarker(raw string) bool {
	return missingMarkers[strings.ToLower(raw)]
}

var (
	nonAlnumRe    = regexp.MustCompile(`[^0-9a-zA-Z]+`)
	camelBreakRe  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	multiUscoreRe = regexp.MustCompile(`__+`)
)

// toSnakeCase converts an arbitrary column name to snake_case. Conservative:
// non-alphanumerics become underscores, camelCase transitions are split,
// runs of underscores collapse.
func toSnakeCase(name string) string {
	s := camelBreakRe.ReplaceAllString(name, "${1}_${2}")
	s = nonAlnumRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	s = multiUscoreRe.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// normalizeHeaders snake_cases every header, names blank headers by
// position, and suffixes duplicates so column names stay unique. Suffixed
// names are re-checked against headers already taken, so a literal "a_2"
// never collides with a generated one.
func normalizeHeaders(raw []string) []string {
	taken := make(map[string]bool, len(raw))
	counts := make(map[string]int, len(raw))
	headers := make([]string, len(raw))
	for i, h := range raw {
		base := toSnakeCase(strings.TrimSpace(h))
		if base == "" {
			base = fmt.Sprintf("column_%d", i)
		}
		name := base
		for taken[name] {
			counts[base]++
			name = fmt.Sprintf("%s_%d", base, counts[base]+1)
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}
