package timeutil

import "time"

// rolloverTolerance is how far a clock-out may precede its clock-in
// before the gap is treated as a real overnight wrap. Smaller negative
// gaps are editing artifacts (rounding, a manager nudging minutes) and
// are left untouched even though they can yield tiny or negative spans.
const rolloverTolerance = 6 * time.Hour

// ResolveClockOut disambiguates a clock-out that appears to precede its
// clock-in. Within the tolerance band the value is returned unchanged;
// beyond it the clock-out is rolled forward whole days until it lands on
// the calendar boundary it actually belongs to. Applying the resolution
// twice is a no-op.
func ResolveClockOut(clockIn, clockOut time.Time) time.Time {
	if clockOut.After(clockIn) {
		return clockOut
	}

	diff := clockIn.Sub(clockOut)
	if diff <= rolloverTolerance {
		return clockOut
	}

	increments := int64(diff/(24*time.Hour)) + 1
	return clockOut.Add(time.Duration(increments) * 24 * time.Hour)
}
