package analysis

import (
	"fmt"
	"time"
)

const (
	DaysPerWeek = 7
	HoursPerDay = 24
)

// DayNames is indexed like time.Weekday.
var DayNames = [DaysPerWeek]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// AnalyzeTemporal buckets events by day of week and hour of day in loc.
// Events with an unparsable timestamp are skipped.
func AnalyzeTemporal(events []PlayEvent, loc *time.Location) (HeatmapResult, error) {
	var result HeatmapResult
	if loc == nil {
		return result, fmt.Errorf("AnalyzeTemporal: nil location: %w", ErrInvalidInput)
	}

	var activeDays [DaysPerWeek]bool
	for _, e := range events {
		if e.DurationMs < 0 {
			return HeatmapResult{}, fmt.Errorf("AnalyzeTemporal: negative duration %d for %q: %w", e.DurationMs, e.TrackName, ErrInvalidInput)
		}
		t, ok := localTime(e, loc)
		if !ok {
			continue
		}
		day, hour := int(t.Weekday()), t.Hour()
		result.Heatmap[day][hour]++
		result.Duration[day][hour] += e.DurationMs
		result.Stats.TotalPlays++
		result.Stats.TotalDuration += e.DurationMs
		activeDays[day] = true
	}

	result.Stats.PeakListening = peakSlot(result.Heatmap)
	result.Stats.Streak = LongestStreak(activeDays)
	return result, nil
}

// peakSlot returns the first cell, in row-major order, holding the maximum
// count. An all-zero matrix peaks at Sunday 00:00.
func peakSlot(heatmap [DaysPerWeek][HoursPerDay]int) PeakSlot {
	best, bestIndex := -1, 0
	for day := range heatmap {
		for hour, count := range heatmap[day] {
			if count > best {
				best = count
				bestIndex = day*HoursPerDay + hour
			}
		}
	}
	return PeakSlot{Hour: bestIndex % HoursPerDay, Day: bestIndex / HoursPerDay}
}

// LongestStreak finds the longest run of active days within a single
// Sunday-to-Saturday week. The week does not wrap around, and the earliest
// of equally long runs wins.
func LongestStreak(activeDays [DaysPerWeek]bool) Streak {
	longest, longestStart := 0, 0
	current, currentStart := 0, 0

	for day, active := range activeDays {
		if active {
			if current == 0 {
				currentStart = day
			}
			current++
			if current > longest {
				longest = current
				longestStart = currentStart
			}
			continue
		}
		current = 0
	}

	if longest == 0 {
		return Streak{}
	}
	start := DayNames[longestStart]
	end := DayNames[longestStart+longest-1]
	return Streak{Count: longest, StartDay: &start, EndDay: &end}
}
