package worksession

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// overnightThreshold decides which day's shift boundary an arrival
// belongs to. Overnight shifts straddle midnight, so a 23:50 arrival for
// a 09:00-scheduled overnight shift is early for tomorrow's cycle, not
// fourteen hours late for today's; past the threshold the arrival is
// attributed to the adjacent cycle instead.
const overnightThreshold = 12 * time.Hour

// LateMinutes compares an actual clock-in against the scheduled "HH:MM"
// shift start in the given timezone. Never negative; malformed input
// yields 0 because a broken schedule row must not flag anyone late.
func LateMinutes(scheduledStart string, actualClockIn time.Time, loc *time.Location, isOvernightShift bool) int {
	if actualClockIn.IsZero() {
		return 0
	}
	hour, minute, ok := parseClockTime(scheduledStart)
	if !ok {
		return 0
	}
	if loc == nil {
		loc = time.UTC
	}

	actual := actualClockIn.In(loc)
	scheduled := time.Date(actual.Year(), actual.Month(), actual.Day(), hour, minute, 0, 0, loc)

	if actual.Before(scheduled) {
		if !isOvernightShift {
			return 0
		}
		lead := scheduled.Sub(actual)
		if lead <= overnightThreshold {
			return 0
		}
		// Past the threshold the arrival belongs to yesterday's cycle.
		previousStart := scheduled.Add(-24 * time.Hour)
		return wholeMinutes(actual.Sub(previousStart))
	}

	late := actual.Sub(scheduled)
	if isOvernightShift && late > overnightThreshold {
		// Far past today's boundary the agent is ahead of tomorrow's
		// cycle, not late for today's.
		return 0
	}
	return wholeMinutes(late)
}

func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

func parseClockTime(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
