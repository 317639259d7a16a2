package worksession

import (
	"context"
	"time"
)

// WorkSessionRepository defines data access for sessions. The session row
// is shared by three writers (agent actions, the presence listener, and
// manager edits), so every mutation here is a targeted update of specific
// fields or an append to a child table, never a whole-row overwrite.
type WorkSessionRepository interface {
	// Create inserts a new session at clock-in.
	Create(ctx context.Context, session WorkSession) (WorkSession, error)

	// GetByID retrieves a session with its breaks and activities loaded.
	GetByID(ctx context.Context, id string, teamID string) (WorkSession, error)

	// GetOpenByAgent returns the agent's current non-clocked-out session.
	// Callers must re-read through this before every transition; a cached
	// copy can miss a concurrent writer's append.
	GetOpenByAgent(ctx context.Context, agentID string) (WorkSession, error)

	// List retrieves sessions with filters and pagination.
	List(ctx context.Context, filter SessionFilter, teamID string) ([]WorkSession, int64, error)

	// GetStaleActive returns active sessions whose last event is older
	// than the cutoff.
	GetStaleActive(ctx context.Context, olderThan time.Time) ([]WorkSession, error)

	// UpdateTransition sets the per-transition scalars in one statement:
	// status, last event anchor, and the frozen cumulative totals.
	UpdateTransition(ctx context.Context, sessionID string, status Status, lastEventAt time.Time, totalWorkSeconds, totalBreakSeconds int64) error

	// CloseSession sets clock-out and final status/totals.
	CloseSession(ctx context.Context, sessionID string, clockOut time.Time, lastEventAt time.Time, totalWorkSeconds, totalBreakSeconds int64) error

	// AppendBreak appends one break entry (insert, never replace).
	AppendBreak(ctx context.Context, entry BreakEntry) (BreakEntry, error)

	// CloseBreak sets the end time of a specific break entry.
	CloseBreak(ctx context.Context, breakID string, endTime time.Time) error

	// AppendActivity appends one activity-log entry.
	AppendActivity(ctx context.Context, entry ActivityEntry) (ActivityEntry, error)

	// CloseActivity sets the end time of a specific activity entry.
	CloseActivity(ctx context.Context, activityID string, endTime time.Time) error

	// UpdateTimes applies a manager correction to the boundary timestamps.
	// A nil clockOut with clearClockOut set re-opens the session.
	UpdateTimes(ctx context.Context, sessionID string, clockIn *time.Time, clockOut *time.Time, clearClockOut bool, status *Status) error

	// SetLateMinutes caches the last computed lateness.
	SetLateMinutes(ctx context.Context, sessionID string, lateMinutes int) error
}
