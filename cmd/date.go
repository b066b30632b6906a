package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ParsedDate is a date argument and the precision it was given with.
type ParsedDate struct {
	Date time.Time

	Year  bool
	Month bool
	Day   bool

	// Relative dates ("30d") count back from now.
	Relative bool
}

var relativeDate = regexp.MustCompile(`^(\d+)([dwmy])$`)

// parseDateRangeOrDefault is parseDateRangeFromArgs, falling back to the
// trailing window of the given length when there are no arguments.
func parseDateRangeOrDefault(args []string, loc *time.Location, window time.Duration) (start time.Time, end time.Time, err error) {
	if len(args) == 0 {
		end = clock.Now().In(loc)
		start = end.Add(-window)
		return
	}
	return parseDateRangeFromArgs(args, loc)
}

func parseDateRangeFromArgs(args []string, loc *time.Location) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 1:
		start, end, err = getImplicitDateRange(args[0], loc)

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1], loc)

	default:
		err = fmt.Errorf("Expected one or two date arguments")
	}
	if err == nil && !start.Before(end) {
		err = fmt.Errorf("Empty date range: %s is not before %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return
}

func getImplicitDateRange(ds string, loc *time.Location) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds, loc)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	case date.Relative:
		end = clock.Now().In(loc)

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string, loc *time.Location) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString, loc)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString, loc)
	if err != nil {
		return
	}
	end = endParsed.Date

	return
}

func parseSingleDatestring(ds string, loc *time.Location) (date ParsedDate, err error) {
	if m := relativeDate.FindStringSubmatch(ds); m != nil {
		var amount int
		amount, err = strconv.Atoi(m[1])
		if err != nil {
			err = fmt.Errorf("Parsing relative datestring: %w", err)
			return
		}
		now := clock.Now().In(loc)
		switch m[2] {
		case "d":
			date.Date = now.AddDate(0, 0, -amount)
		case "w":
			date.Date = now.AddDate(0, 0, -amount*7)
		case "m":
			date.Date = now.AddDate(0, -amount, 0)
		case "y":
			date.Date = now.AddDate(-amount, 0, 0)
		}
		date.Relative = true
		return
	}

	layouts := []struct {
		pattern string
		layout  string
		name    string
		flag    *bool
	}{
		{`^\d{4}$`, "2006", "year", &date.Year},
		{`^\d{4}-\d{2}$`, "2006-01", "month", &date.Month},
		{`^\d{4}-\d{2}-\d{2}$`, "2006-01-02", "day", &date.Day},
	}
	for _, l := range layouts {
		matched, matchErr := regexp.MatchString(l.pattern, ds)
		if matchErr != nil {
			err = fmt.Errorf("Parsing datestring as %s: %w", l.name, matchErr)
			return
		}
		if !matched {
			continue
		}
		date.Date, err = time.ParseInLocation(l.layout, ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as %s: %w", l.name, err)
			return
		}
		*l.flag = true
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
