package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts without a zone offset are read in the analysis location.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseTimestamp interprets a stored play timestamp in loc. It accepts unix
// seconds, RFC 3339 and a few zone-less layouts.
func ParseTimestamp(ts string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, fmt.Errorf("parsing timestamp: nil location: %w", ErrInvalidInput)
	}
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, fmt.Errorf("parsing timestamp: empty")
	}

	if uts, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(uts, 0).In(loc), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("parsing timestamp %q: unknown format", ts)
}

// localTime is ParseTimestamp for callers that skip unparsable events.
func localTime(e PlayEvent, loc *time.Location) (time.Time, bool) {
	t, err := ParseTimestamp(e.PlayedAt, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
