package utils

import (
	"strings"
	"time"
)

const DisplayDateLayout = "January 2, 2006"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes the backends emit.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats s as a long date, falling back to now when s does not parse.
func DisplayDate(s string, now time.Time) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		t = now
	}
	return t.Format(DisplayDateLayout)
}
