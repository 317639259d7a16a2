package worksession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLateMinutes(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	tests := []struct {
		name           string
		scheduledStart string
		actualClockIn  time.Time
		loc            *time.Location
		overnight      bool
		want           int
	}{
		{
			name:           "on time",
			scheduledStart: "09:00",
			actualClockIn:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			loc:            time.UTC,
			want:           0,
		},
		{
			name:           "twenty minutes late",
			scheduledStart: "09:00",
			actualClockIn:  time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC),
			loc:            time.UTC,
			want:           20,
		},
		{
			name:           "early arrival is not late",
			scheduledStart: "09:00",
			actualClockIn:  time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
			loc:            time.UTC,
			want:           0,
		},
		{
			name:           "lateness in shift timezone",
			scheduledStart: "09:00",
			// 02:20 UTC is 09:20 in Jakarta (UTC+7)
			actualClockIn: time.Date(2026, 3, 2, 2, 20, 0, 0, time.UTC),
			loc:           jakarta,
			want:          20,
		},
		{
			name:           "overnight early arrival within threshold",
			scheduledStart: "21:00",
			actualClockIn:  time.Date(2026, 3, 2, 20, 30, 0, 0, time.UTC),
			loc:            time.UTC,
			overnight:      true,
			want:           0,
		},
		{
			name:           "overnight late evening arrival is early for next cycle",
			scheduledStart: "09:00",
			// 23:50 is 9h10m ahead of tomorrow's 09:00 boundary.
			actualClockIn: time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC),
			loc:           time.UTC,
			overnight:     true,
			want:          0,
		},
		{
			name:           "overnight arrival counts against previous day",
			scheduledStart: "21:00",
			// 02:00 is 19h before tonight's 21:00, past the threshold,
			// so it belongs to yesterday's shift: 5h late.
			actualClockIn: time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC),
			loc:           time.UTC,
			overnight:     true,
			want:          300,
		},
		{
			name:           "non-overnight never rolls to previous day",
			scheduledStart: "21:00",
			actualClockIn:  time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC),
			loc:            time.UTC,
			want:           0,
		},
		{
			name:           "malformed schedule yields zero",
			scheduledStart: "9am",
			actualClockIn:  time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC),
			loc:            time.UTC,
			want:           0,
		},
		{
			name:           "out of range minute yields zero",
			scheduledStart: "09:75",
			actualClockIn:  time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC),
			loc:            time.UTC,
			want:           0,
		},
		{
			name:           "zero clock-in yields zero",
			scheduledStart: "09:00",
			actualClockIn:  time.Time{},
			loc:            time.UTC,
			want:           0,
		},
		{
			name:           "nil location defaults to UTC",
			scheduledStart: "09:00",
			actualClockIn:  time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC),
			loc:            nil,
			want:           5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LateMinutes(tt.scheduledStart, tt.actualClockIn, tt.loc, tt.overnight)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLateMinutesRoundsToWholeMinutes(t *testing.T) {
	actual := time.Date(2026, 3, 2, 9, 10, 31, 0, time.UTC)
	assert.Equal(t, 11, LateMinutes("09:00", actual, time.UTC, false))

	actual = time.Date(2026, 3, 2, 9, 10, 29, 0, time.UTC)
	assert.Equal(t, 10, LateMinutes("09:00", actual, time.UTC, false))
}
