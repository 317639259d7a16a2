package worksession

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusWorking    Status = "working"
	StatusOnBreak    Status = "on_break"
	StatusClockedOut Status = "clocked_out"
)

var StatusValues = []string{
	string(StatusWorking),
	string(StatusOnBreak),
	string(StatusClockedOut),
}

type BreakCause string

const (
	CauseManual     BreakCause = "manual"
	CauseIdle       BreakCause = "idle"
	CauseScreenLock BreakCause = "screen_lock"
)

// WorkSession is one agent's continuous work period, from clock-in to
// clock-out. Scalars on the row are the frozen view as of LastEventAt;
// Breaks/Activities carry the interval detail.
type WorkSession struct {
	ID      string
	AgentID string
	TeamID  string

	Status            Status
	ClockIn           time.Time
	ClockOut          *time.Time
	LastEventAt       time.Time
	TotalWorkSeconds  int64
	TotalBreakSeconds int64

	// Breaks is the legacy per-break log. Appended in event order but not
	// guaranteed sorted by start time; Seq preserves the original index.
	Breaks []BreakEntry

	// Activities is the newer per-activity log. When non-empty it
	// supersedes Breaks for timeline reconstruction.
	Activities []ActivityEntry

	// LegacySegments holds the oldest numeric-keyed import payload, kept
	// verbatim from the migration. Only the timeline builder touches it.
	LegacySegments json.RawMessage

	// Shift metadata, consumed by the late-arrival calculation only.
	ScheduledStart   *string // "HH:MM"
	IsOvernightShift bool
	LateMinutes      *int // last computed value, may be stale

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	AgentName *string
}

// BreakEntry is a single break interval. EndTime nil means the break is
// still open; at most one entry per session may be open.
type BreakEntry struct {
	ID            string
	SessionID     string
	Seq           int
	StartTime     time.Time
	EndTime       *time.Time
	Cause         BreakCause
	IsSystemEvent bool
}

// Open reports whether the entry is still in progress.
func (b BreakEntry) Open() bool {
	return b.EndTime == nil
}

type ActivityType string

const (
	ActivityWorking ActivityType = "working"
	ActivityOnBreak ActivityType = "on_break"
)

// ActivityEntry is one entry of the newer per-activity log.
type ActivityEntry struct {
	ID            string
	SessionID     string
	Seq           int
	Type          ActivityType
	Cause         *BreakCause
	StartTime     time.Time
	EndTime       *time.Time
	IsSystemEvent bool
}

type SegmentType string

const (
	SegmentWorking     SegmentType = "working"
	SegmentOnBreak     SegmentType = "on_break"
	SegmentSystemEvent SegmentType = "system_event"
)

// Segment is a derived timeline entry. Segments are recomputed on every
// read and never persisted.
type Segment struct {
	Type            SegmentType
	StartTime       time.Time
	EndTime         *time.Time // nil while the segment is still open
	DurationSeconds int64
	Cause           *BreakCause
}

// DurationSummary splits a session's elapsed time into the three
// mutually exclusive buckets.
type DurationSummary struct {
	WorkSeconds        int64
	ManualBreakSeconds int64
	IdleBreakSeconds   int64
}

// Active reports whether the session still accrues live time.
func (s WorkSession) Active() bool {
	return s.Status != StatusClockedOut
}

// OpenBreak returns the currently open break entry, if any. Entries are
// scanned in order so a later open entry supersedes an earlier stray one.
func (s WorkSession) OpenBreak() *BreakEntry {
	for i := len(s.Breaks) - 1; i >= 0; i-- {
		if s.Breaks[i].Open() {
			return &s.Breaks[i]
		}
	}
	return nil
}
