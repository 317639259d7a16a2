package worksession

import (
	"context"
)

// WorkSessionService defines business logic for session tracking.
type WorkSessionService interface {
	// ClockIn opens a new session for the authenticated agent.
	ClockIn(ctx context.Context, req ClockInRequest) (SessionResponse, error)

	// ClockOut closes the agent's open session.
	ClockOut(ctx context.Context) (SessionResponse, error)

	// StartBreak opens a manual break on the agent's working session.
	StartBreak(ctx context.Context) (SessionResponse, error)

	// EndBreak closes the agent's open break and resumes working.
	EndBreak(ctx context.Context) (SessionResponse, error)

	// ApplyPresenceSignal feeds one desktop presence update through the
	// idle state machine.
	ApplyPresenceSignal(ctx context.Context, req PresenceSignalRequest) error

	// GetCurrent returns the agent's open session with timeline and
	// duration totals.
	GetCurrent(ctx context.Context) (SessionResponse, error)

	// GetTimeline returns the derived segment list for a session.
	GetTimeline(ctx context.Context, id string) ([]SegmentResponse, error)

	// GetSummary returns the duration buckets for a session.
	GetSummary(ctx context.Context, id string) (DurationSummaryResponse, error)

	// ListSessions retrieves sessions for managers, with filters.
	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionsResponse, error)

	// UpdateSession applies a manager correction to session times.
	UpdateSession(ctx context.Context, req UpdateSessionRequest) (SessionResponse, error)

	// ForceClose closes a stale session at its last known event time.
	ForceClose(ctx context.Context, id string) (SessionResponse, error)
}
