package table

import (
	"strconv"
	"strings"
	"time"
)

// DatetimeLayouts are the accepted datetime formats, tried in order.
var DatetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04:05",
}

// ParsesAsNumeric reports whether a raw value parses as a float64.
func ParsesAsNumeric(raw string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil
}

// ParsesAsDatetime reports whether a raw value parses under any accepted layout.
func ParsesAsDatetime(raw string) bool {
	s := strings.TrimSpace(raw)
	for _, layout := range DatetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ParsesAsBoolean reports whether a raw value is a recognized boolean marker.
func ParsesAsBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "false", "t", "f", "yes", "no", "0", "1":
		return true
	}
	return false
}
