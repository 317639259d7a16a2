package worksession

import (
	"testing"
	"time"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/presence"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/stretchr/testify/assert"
)

func TestAggregateClosedSession(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.Breaks = []worksession.BreakEntry{
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z"), Cause: worksession.CauseManual},
	}
	// A drifted running total must not leak into the closed result.
	session.TotalWorkSeconds = 99999

	summary := Aggregate(session, presence.Presence{}, now)

	// Work is recomputed from the boundary timestamps: 8h minus break.
	assert.Equal(t, int64(8*3600-1800), summary.WorkSeconds)
	assert.Equal(t, int64(1800), summary.ManualBreakSeconds)
	assert.Equal(t, int64(0), summary.IdleBreakSeconds)
}

func TestAggregateIdleClassification(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.TotalBreakSeconds = 2100
	session.Breaks = []worksession.BreakEntry{
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T10:00:00Z"), EndTime: tsPtr(t, "2026-03-02T10:10:00Z"), Cause: worksession.CauseIdle},
		{ID: "b2", Seq: 1, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z"), Cause: worksession.CauseManual},
		{ID: "b3", Seq: 2, StartTime: ts(t, "2026-03-02T15:00:00Z"), EndTime: tsPtr(t, "2026-03-02T15:05:00Z"), Cause: worksession.CauseScreenLock, IsSystemEvent: true},
	}

	summary := Aggregate(session, presence.Presence{}, now)

	assert.Equal(t, int64(1800), summary.ManualBreakSeconds)
	// Idle break plus screen lock; neither was the agent's choice.
	assert.Equal(t, int64(600+300), summary.IdleBreakSeconds)
}

func TestAggregateCountsBreakLogSystemEvents(t *testing.T) {
	now := time.Now().UTC()

	// Documents written during the schema migration carry the screen
	// lock only in the break log while the activity log already exists.
	session := closedSession(t)
	session.TotalBreakSeconds = 2700
	manualCause := worksession.CauseManual
	lockCause := worksession.CauseScreenLock
	session.Activities = []worksession.ActivityEntry{
		{ID: "a1", Seq: 0, Type: worksession.ActivityWorking, StartTime: ts(t, "2026-03-02T09:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:00:00Z")},
		{ID: "a2", Seq: 1, Type: worksession.ActivityOnBreak, Cause: &manualCause, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z")},
		{ID: "a3", Seq: 2, Cause: &lockCause, StartTime: ts(t, "2026-03-02T14:00:00Z"), EndTime: tsPtr(t, "2026-03-02T14:10:00Z"), IsSystemEvent: true},
	}
	session.Breaks = []worksession.BreakEntry{
		// Mirrored in the activity log; must not count twice.
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T14:00:00Z"), EndTime: tsPtr(t, "2026-03-02T14:10:00Z"), Cause: worksession.CauseScreenLock, IsSystemEvent: true},
		{ID: "b2", Seq: 1, StartTime: ts(t, "2026-03-02T15:00:00Z"), EndTime: tsPtr(t, "2026-03-02T15:05:00Z"), Cause: worksession.CauseScreenLock, IsSystemEvent: true},
	}

	summary := Aggregate(session, presence.Presence{}, now)

	assert.Equal(t, int64(1800), summary.ManualBreakSeconds)
	assert.Equal(t, int64(600+300), summary.IdleBreakSeconds)
}

func TestAggregateLiveWorkingSession(t *testing.T) {
	now := ts(t, "2026-03-02T11:00:00Z")

	session := worksession.WorkSession{
		ID:               "s1",
		AgentID:          "agent-1",
		Status:           worksession.StatusWorking,
		ClockIn:          ts(t, "2026-03-02T09:00:00Z"),
		LastEventAt:      ts(t, "2026-03-02T10:00:00Z"),
		TotalWorkSeconds: 3600,
	}

	attentive := presence.Presence{AgentID: "agent-1"}
	summary := Aggregate(session, attentive, now)
	assert.Equal(t, int64(2*3600), summary.WorkSeconds)

	// An idle snapshot stops live accrual; the frozen total stands.
	idle := presence.Presence{AgentID: "agent-1", IsIdle: true}
	summary = Aggregate(session, idle, now)
	assert.Equal(t, int64(3600), summary.WorkSeconds)
}

func TestAggregateOpenBreakAccruesLive(t *testing.T) {
	now := ts(t, "2026-03-02T12:45:00Z")

	session := worksession.WorkSession{
		ID:               "s1",
		Status:           worksession.StatusOnBreak,
		ClockIn:          ts(t, "2026-03-02T09:00:00Z"),
		LastEventAt:      ts(t, "2026-03-02T12:00:00Z"),
		TotalWorkSeconds: 3 * 3600,
		Breaks: []worksession.BreakEntry{
			{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:00:00Z"), Cause: worksession.CauseManual},
		},
	}

	summary := Aggregate(session, presence.Presence{ManualBreak: true}, now)

	// Exactly one bucket takes the live interval.
	assert.Equal(t, int64(3*3600), summary.WorkSeconds)
	assert.Equal(t, int64(45*60), summary.ManualBreakSeconds)
	assert.Equal(t, int64(0), summary.IdleBreakSeconds)
}

func TestAggregateTotalsOnlyFallback(t *testing.T) {
	now := ts(t, "2026-03-02T13:00:00Z")

	// Oldest documents carry cumulative totals and no entry list at all.
	session := worksession.WorkSession{
		ID:                "s1",
		Status:            worksession.StatusOnBreak,
		ClockIn:           ts(t, "2026-03-02T09:00:00Z"),
		LastEventAt:       ts(t, "2026-03-02T12:30:00Z"),
		TotalWorkSeconds:  12000,
		TotalBreakSeconds: 600,
	}

	summary := Aggregate(session, presence.Presence{}, now)

	assert.Equal(t, int64(12000), summary.WorkSeconds)
	// Stored total plus the open interval since the last event.
	assert.Equal(t, int64(600+30*60), summary.ManualBreakSeconds)
}

func TestAggregateClockedOutStopsAccrual(t *testing.T) {
	// Well past clock-out the numbers must not move.
	session := closedSession(t)
	session.Breaks = []worksession.BreakEntry{
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z"), Cause: worksession.CauseManual},
	}

	atClose := Aggregate(session, presence.Presence{}, ts(t, "2026-03-02T17:00:00Z"))
	dayLater := Aggregate(session, presence.Presence{}, ts(t, "2026-03-03T17:00:00Z"))

	assert.Equal(t, atClose, dayLater)
}

func TestAggregateOpenBreakWithoutEndUsesCutoff(t *testing.T) {
	// A session force-closed while a break was still open: the break
	// interval stops at last_event_at, not at read time.
	clockOut := ts(t, "2026-03-02T12:00:00Z")
	session := worksession.WorkSession{
		ID:                "s1",
		Status:            worksession.StatusClockedOut,
		ClockIn:           ts(t, "2026-03-02T09:00:00Z"),
		ClockOut:          &clockOut,
		LastEventAt:       ts(t, "2026-03-02T12:00:00Z"),
		TotalBreakSeconds: 1800,
		Breaks: []worksession.BreakEntry{
			{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T11:30:00Z"), Cause: worksession.CauseManual},
		},
	}

	summary := Aggregate(session, presence.Presence{}, ts(t, "2026-03-02T15:00:00Z"))
	assert.Equal(t, int64(1800), summary.ManualBreakSeconds)
}
