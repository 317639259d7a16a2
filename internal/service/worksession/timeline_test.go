package worksession

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func tsPtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := ts(t, value)
	return &parsed
}

func closedSession(t *testing.T) worksession.WorkSession {
	t.Helper()
	clockOut := ts(t, "2026-03-02T17:00:00Z")
	return worksession.WorkSession{
		ID:                "s1",
		AgentID:           "agent-1",
		Status:            worksession.StatusClockedOut,
		ClockIn:           ts(t, "2026-03-02T09:00:00Z"),
		ClockOut:          &clockOut,
		LastEventAt:       clockOut,
		TotalBreakSeconds: 1800,
	}
}

func TestBuildTimelineFromBreaks(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.Breaks = []worksession.BreakEntry{
		{
			ID:        "b1",
			Seq:       0,
			StartTime: ts(t, "2026-03-02T12:00:00Z"),
			EndTime:   tsPtr(t, "2026-03-02T12:30:00Z"),
			Cause:     worksession.CauseManual,
		},
	}

	segments := BuildTimeline(session, now)
	require.Len(t, segments, 3)

	assert.Equal(t, worksession.SegmentWorking, segments[0].Type)
	assert.Equal(t, int64(3*3600), segments[0].DurationSeconds)

	assert.Equal(t, worksession.SegmentOnBreak, segments[1].Type)
	assert.Equal(t, int64(1800), segments[1].DurationSeconds)

	assert.Equal(t, worksession.SegmentWorking, segments[2].Type)
	assert.Equal(t, int64(4*3600+1800), segments[2].DurationSeconds)
	require.NotNil(t, segments[2].EndTime)
	assert.True(t, segments[2].EndTime.Equal(ts(t, "2026-03-02T17:00:00Z")))
}

func TestBuildTimelineNoOverlap(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.Breaks = []worksession.BreakEntry{
		// Appended out of start order after a manager edit
		{ID: "b2", Seq: 1, StartTime: ts(t, "2026-03-02T14:00:00Z"), EndTime: tsPtr(t, "2026-03-02T14:15:00Z"), Cause: worksession.CauseManual},
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T10:00:00Z"), EndTime: tsPtr(t, "2026-03-02T10:10:00Z"), Cause: worksession.CauseIdle},
	}

	segments := BuildTimeline(session, now)
	require.NotEmpty(t, segments)

	for i := 1; i < len(segments); i++ {
		prev := segments[i-1]
		require.NotNil(t, prev.EndTime, "segment %d should be closed", i-1)
		assert.False(t, segments[i].StartTime.Before(*prev.EndTime),
			"segment %d starts before segment %d ends", i, i-1)
	}
}

func TestBuildTimelineDurationConservation(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.Breaks = []worksession.BreakEntry{
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z"), Cause: worksession.CauseManual},
		{ID: "b2", Seq: 1, StartTime: ts(t, "2026-03-02T15:00:00Z"), EndTime: tsPtr(t, "2026-03-02T15:20:00Z"), Cause: worksession.CauseIdle},
	}

	segments := BuildTimeline(session, now)

	var total int64
	for _, seg := range segments {
		total += seg.DurationSeconds
	}
	assert.Equal(t, int64(8*3600), total, "segments should cover clock-in to clock-out exactly")
}

func TestBuildTimelineOpenBreakFreezesTrailingSegment(t *testing.T) {
	now := ts(t, "2026-03-02T13:00:00Z")

	session := worksession.WorkSession{
		ID:          "s1",
		Status:      worksession.StatusOnBreak,
		ClockIn:     ts(t, "2026-03-02T09:00:00Z"),
		LastEventAt: ts(t, "2026-03-02T12:00:00Z"),
		Breaks: []worksession.BreakEntry{
			{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:00:00Z"), Cause: worksession.CauseManual},
		},
	}

	segments := BuildTimeline(session, now)
	require.Len(t, segments, 2)

	assert.Equal(t, worksession.SegmentWorking, segments[0].Type)
	assert.Equal(t, worksession.SegmentOnBreak, segments[1].Type)
	assert.Nil(t, segments[1].EndTime)
	// Open break accrues against now
	assert.Equal(t, int64(3600), segments[1].DurationSeconds)
}

func TestBuildTimelineActiveSessionExtendsToNow(t *testing.T) {
	now := ts(t, "2026-03-02T11:00:00Z")

	session := worksession.WorkSession{
		ID:          "s1",
		Status:      worksession.StatusWorking,
		ClockIn:     ts(t, "2026-03-02T09:00:00Z"),
		LastEventAt: ts(t, "2026-03-02T09:00:00Z"),
	}

	segments := BuildTimeline(session, now)
	require.Len(t, segments, 1)
	assert.Equal(t, worksession.SegmentWorking, segments[0].Type)
	assert.Nil(t, segments[0].EndTime)
	assert.Equal(t, int64(2*3600), segments[0].DurationSeconds)
}

func TestBuildTimelineFromActivities(t *testing.T) {
	now := time.Now().UTC()
	idle := worksession.CauseIdle

	session := closedSession(t)
	session.Activities = []worksession.ActivityEntry{
		{ID: "a1", Seq: 0, Type: worksession.ActivityWorking, StartTime: ts(t, "2026-03-02T09:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:00:00Z")},
		{ID: "a2", Seq: 1, Type: worksession.ActivityOnBreak, Cause: &idle, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z")},
		{ID: "a3", Seq: 2, Type: worksession.ActivityWorking, StartTime: ts(t, "2026-03-02T12:30:00Z"), EndTime: tsPtr(t, "2026-03-02T17:00:00Z")},
	}
	// The same break also exists in the break log; it must not duplicate.
	session.Breaks = []worksession.BreakEntry{
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:00:00Z"), EndTime: tsPtr(t, "2026-03-02T12:30:00Z"), Cause: worksession.CauseScreenLock, IsSystemEvent: true},
		{ID: "b2", Seq: 1, StartTime: ts(t, "2026-03-02T15:00:00Z"), EndTime: tsPtr(t, "2026-03-02T15:05:00Z"), Cause: worksession.CauseScreenLock, IsSystemEvent: true},
	}

	segments := BuildTimeline(session, now)
	require.Len(t, segments, 4)

	// b2 is only in the break log and gets folded in at its position.
	assert.Equal(t, worksession.SegmentSystemEvent, segments[3].Type)
	assert.True(t, segments[3].StartTime.Equal(ts(t, "2026-03-02T15:00:00Z")))

	// b1 shares a start with a2 and is dropped as a duplicate.
	var breakCount int
	for _, seg := range segments {
		if seg.Type == worksession.SegmentOnBreak {
			breakCount++
		}
	}
	assert.Equal(t, 1, breakCount)
}

func TestBuildTimelineFromLegacySegments(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.LegacySegments = json.RawMessage(`{
		"1": {"startTime": "2026-03-02T12:00:00Z", "endTime": "2026-03-02T12:30:00Z"},
		"0": {"startTime": 1772442000000, "endTime": "2026-03-02T12:00:00Z", "durationSeconds": 10800},
		"2": {"type": "working", "startTime": "2026-03-02T12:30:00Z", "endTime": "2026-03-02T17:00:00Z"}
	}`)

	segments := BuildTimeline(session, now)
	require.Len(t, segments, 3)

	// Key "0" carries an epoch-millis start and an explicit duration.
	assert.Equal(t, worksession.SegmentWorking, segments[0].Type)
	assert.Equal(t, int64(10800), segments[0].DurationSeconds)

	// Key "1" has no type; odd positions default to break.
	assert.Equal(t, worksession.SegmentOnBreak, segments[1].Type)
	assert.Equal(t, int64(1800), segments[1].DurationSeconds)

	assert.Equal(t, worksession.SegmentWorking, segments[2].Type)
}

func TestBuildTimelineLegacyIgnoresMalformedEntries(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.LegacySegments = json.RawMessage(`{
		"0": {"type": "working", "startTime": "2026-03-02T09:00:00Z", "endTime": "2026-03-02T17:00:00Z"},
		"notakey": {"type": "working", "startTime": "2026-03-02T09:00:00Z"},
		"1": {"type": "break"}
	}`)

	segments := BuildTimeline(session, now)
	require.Len(t, segments, 1)
	assert.Equal(t, worksession.SegmentWorking, segments[0].Type)
}

func TestBuildTimelineInvertedIntervalCountsZero(t *testing.T) {
	now := time.Now().UTC()

	session := closedSession(t)
	session.Breaks = []worksession.BreakEntry{
		{ID: "b1", Seq: 0, StartTime: ts(t, "2026-03-02T12:30:00Z"), EndTime: tsPtr(t, "2026-03-02T12:00:00Z"), Cause: worksession.CauseManual},
	}

	segments := BuildTimeline(session, now)
	for _, seg := range segments {
		assert.GreaterOrEqual(t, seg.DurationSeconds, int64(0))
	}
}
