package schedule

import "time"

// ShiftSchedule is one agent's planned shift for one work date. Only the
// lateness calculation consumes it.
type ShiftSchedule struct {
	ID          string
	AgentID     string
	TeamID      string
	Date        time.Time // work date, midnight local
	StartTime   string    // "HH:MM" in the shift's timezone
	IsOvernight bool      // shift crosses midnight
	Timezone    string    // IANA name, e.g. "Asia/Jakarta"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
