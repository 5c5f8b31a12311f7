package domain

import (
	"strings"
	"time"
)

// dueDateLayouts are tried in order. Fractional seconds are accepted by the
// seconds layouts without being spelled out.
var dueDateLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate parses an ISO-8601-like timestamp. A trailing "Z" is read as
// "+00:00", a space may separate date and time, and values without an offset
// are taken to be UTC. The result is always in UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDueDate
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDueDate
}
