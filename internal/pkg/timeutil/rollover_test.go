package timeutil

import (
	"testing"
	"time"
)

func TestResolveClockOut(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		want     time.Time
	}{
		{
			name:     "normal forward span unchanged",
			clockIn:  monday.Add(9 * time.Hour),
			clockOut: monday.Add(17 * time.Hour),
			want:     monday.Add(17 * time.Hour),
		},
		{
			name:     "small negative diff inside tolerance unchanged",
			clockIn:  monday.Add(9 * time.Hour),
			clockOut: monday.Add(7 * time.Hour),
			want:     monday.Add(7 * time.Hour),
		},
		{
			name:     "exactly six hours back unchanged",
			clockIn:  monday.Add(12 * time.Hour),
			clockOut: monday.Add(6 * time.Hour),
			want:     monday.Add(6 * time.Hour),
		},
		{
			// Clock-in Monday 22:00, clock-out recorded Monday 06:00:
			// a real overnight session, rolled to Tuesday 06:00.
			name:     "overnight wrap rolls one day",
			clockIn:  monday.Add(22 * time.Hour),
			clockOut: monday.Add(6 * time.Hour),
			want:     monday.Add(30 * time.Hour),
		},
		{
			name:     "multi-day gap rolls whole days",
			clockIn:  monday.Add(22 * time.Hour),
			clockOut: monday.Add(-22 * time.Hour), // Sunday 02:00, 44h back
			want:     monday.Add(26 * time.Hour),  // 44h/24h rounds up to a 2-day roll: Tuesday 02:00
		},
		{
			name:     "equal times unchanged",
			clockIn:  monday.Add(9 * time.Hour),
			clockOut: monday.Add(9 * time.Hour),
			want:     monday.Add(9 * time.Hour),
		},
	}

	for _, c := range cases {
		got := ResolveClockOut(c.clockIn, c.clockOut)
		if !got.Equal(c.want) {
			t.Errorf("%s: ResolveClockOut = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestResolveClockOutIdempotent(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	clockIn := monday.Add(22 * time.Hour)

	outs := []time.Time{
		monday.Add(6 * time.Hour),   // overnight wrap
		monday.Add(17 * time.Hour),  // inside tolerance
		monday.Add(23 * time.Hour),  // already forward
		monday.Add(-30 * time.Hour), // multi-day
	}

	for _, out := range outs {
		once := ResolveClockOut(clockIn, out)
		twice := ResolveClockOut(clockIn, once)
		if !twice.Equal(once) {
			t.Errorf("ResolveClockOut not idempotent for %v: once=%v twice=%v", out, once, twice)
		}
	}
}
