package worksession

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/presence"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/schedule"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/sse"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/timeutil"
)

// WorkSessionServiceImpl is the sole writer of session state on this
// side; the desktop client writes through its own path. Every transition
// re-reads the session row first and lands as targeted updates, so two
// racing writers interleave at the field level instead of overwriting
// each other's documents.
type WorkSessionServiceImpl struct {
	worksession.WorkSessionRepository
	presenceRepo presence.PresenceRepository
	schedules    schedule.ScheduleService
	hub          *sse.Hub
}

func NewWorkSessionService(
	sessionRepo worksession.WorkSessionRepository,
	presenceRepo presence.PresenceRepository,
	schedules schedule.ScheduleService,
	hub *sse.Hub,
) worksession.WorkSessionService {
	return &WorkSessionServiceImpl{
		WorkSessionRepository: sessionRepo,
		presenceRepo:          presenceRepo,
		schedules:             schedules,
		hub:                   hub,
	}
}

func claimsFromContext(ctx context.Context) (agentID, teamID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	agentID, ok := claims["agent_id"].(string)
	if !ok || agentID == "" {
		return "", "", fmt.Errorf("agent_id claim is missing or invalid")
	}

	teamID, ok = claims["team_id"].(string)
	if !ok || teamID == "" {
		return "", "", fmt.Errorf("team_id claim is missing or invalid")
	}

	return agentID, teamID, nil
}

// persist runs one targeted write with backoff. A write that still fails
// after retries is surfaced and logged, never rolled back locally: the
// next read of the session row is authoritative and reconciles state.
func persist(ctx context.Context, op string, fn func() error) error {
	err := retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying session write", "op", op, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		slog.Error("Session write failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClockIn implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) ClockIn(ctx context.Context, req worksession.ClockInRequest) (worksession.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return worksession.SessionResponse{}, err
	}

	agentID, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	if _, err := s.WorkSessionRepository.GetOpenByAgent(ctx, agentID); err == nil {
		return worksession.SessionResponse{}, worksession.ErrAlreadyClockedIn
	} else if !errors.Is(err, worksession.ErrSessionNotFound) {
		return worksession.SessionResponse{}, fmt.Errorf("failed to check for open session: %w", err)
	}

	now := time.Now().UTC()

	scheduledStart := req.ScheduledStart
	overnight := req.IsOvernightShift
	loc := time.UTC
	if shift, err := s.schedules.GetShift(ctx, agentID, now); err == nil {
		if scheduledStart == nil {
			scheduledStart = &shift.StartTime
			overnight = shift.IsOvernight
		}
		if l, lerr := time.LoadLocation(shift.Timezone); lerr == nil {
			loc = l
		}
	}

	session := worksession.WorkSession{
		AgentID:          agentID,
		TeamID:           teamID,
		Status:           worksession.StatusWorking,
		ClockIn:          now,
		LastEventAt:      now,
		ScheduledStart:   scheduledStart,
		IsOvernightShift: overnight,
	}
	if scheduledStart != nil {
		late := LateMinutes(*scheduledStart, now, loc, overnight)
		session.LateMinutes = &late
	}

	created := session
	if err := persist(ctx, "create session", func() error {
		var perr error
		created, perr = s.WorkSessionRepository.Create(ctx, session)
		return perr
	}); err != nil {
		return worksession.SessionResponse{}, err
	}

	if err := persist(ctx, "append working activity", func() error {
		_, perr := s.WorkSessionRepository.AppendActivity(ctx, worksession.ActivityEntry{
			SessionID: created.ID,
			Type:      worksession.ActivityWorking,
			StartTime: now,
		})
		return perr
	}); err != nil {
		return worksession.SessionResponse{}, err
	}

	s.publish(created.TeamID, sse.EventSessionUpdated, created.ID)
	return s.respond(ctx, created.ID, created.AgentID, created.TeamID)
}

// ClockOut implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) ClockOut(ctx context.Context) (worksession.SessionResponse, error) {
	agentID, _, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetOpenByAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, worksession.ErrSessionNotFound) {
			return worksession.SessionResponse{}, worksession.ErrNotClockedIn
		}
		return worksession.SessionResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	now := time.Now().UTC()
	totalWork := session.TotalWorkSeconds
	totalBreak := session.TotalBreakSeconds

	if open := session.OpenBreak(); open != nil {
		totalBreak += elapsedSeconds(session.LastEventAt, now)
		if err := persist(ctx, "close open break", func() error {
			return s.WorkSessionRepository.CloseBreak(ctx, open.ID, now)
		}); err != nil {
			return worksession.SessionResponse{}, err
		}
	} else if session.Status == worksession.StatusWorking {
		totalWork += elapsedSeconds(session.LastEventAt, now)
	}

	s.closeOpenActivity(ctx, session, now)

	if err := persist(ctx, "close session", func() error {
		return s.WorkSessionRepository.CloseSession(ctx, session.ID, now, now, totalWork, totalBreak)
	}); err != nil {
		return worksession.SessionResponse{}, err
	}

	s.publish(session.TeamID, sse.EventSessionClosed, session.ID)
	return s.respond(ctx, session.ID, session.AgentID, session.TeamID)
}

// StartBreak implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) StartBreak(ctx context.Context) (worksession.SessionResponse, error) {
	agentID, _, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetOpenByAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, worksession.ErrSessionNotFound) {
			return worksession.SessionResponse{}, worksession.ErrNotClockedIn
		}
		return worksession.SessionResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if session.Status != worksession.StatusWorking {
		return worksession.SessionResponse{}, worksession.ErrNotWorking
	}

	now := time.Now().UTC()
	if err := s.openBreak(ctx, session, now, worksession.CauseManual); err != nil {
		return worksession.SessionResponse{}, err
	}

	s.publish(session.TeamID, sse.EventSessionUpdated, session.ID)
	return s.respond(ctx, session.ID, session.AgentID, session.TeamID)
}

// EndBreak implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) EndBreak(ctx context.Context) (worksession.SessionResponse, error) {
	agentID, _, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetOpenByAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, worksession.ErrSessionNotFound) {
			return worksession.SessionResponse{}, worksession.ErrNotClockedIn
		}
		return worksession.SessionResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if session.Status != worksession.StatusOnBreak {
		return worksession.SessionResponse{}, worksession.ErrNotOnBreak
	}

	now := time.Now().UTC()
	if err := s.resumeWorking(ctx, session, now); err != nil {
		return worksession.SessionResponse{}, err
	}

	s.publish(session.TeamID, sse.EventSessionUpdated, session.ID)
	return s.respond(ctx, session.ID, session.AgentID, session.TeamID)
}

// ApplyPresenceSignal implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) ApplyPresenceSignal(ctx context.Context, req worksession.PresenceSignalRequest) error {
	agentID, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	snapshot := presence.Presence{
		AgentID:     agentID,
		IsIdle:      req.IsIdle,
		ManualBreak: req.ManualBreak,
		IsAway:      req.IsAway,
		UpdatedAt:   now,
	}
	if err := persist(ctx, "upsert presence", func() error {
		return s.presenceRepo.Upsert(ctx, snapshot)
	}); err != nil {
		return err
	}
	s.publish(teamID, sse.EventPresenceChanged, agentID)

	// Re-read the session after the snapshot write; another writer may
	// have appended a break in the meantime.
	session, err := s.WorkSessionRepository.GetOpenByAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, worksession.ErrSessionNotFound) {
			return nil // idle signal without an active session is a no-op
		}
		return fmt.Errorf("failed to get open session: %w", err)
	}

	switch {
	case req.IsIdle && session.Status == worksession.StatusWorking:
		// The desktop writer and this engine can race on screen-lock
		// entries; close any stray open one before opening the idle break.
		for _, brk := range session.Breaks {
			if brk.Open() && brk.Cause == worksession.CauseScreenLock {
				if err := persist(ctx, "close stray screen lock", func() error {
					return s.WorkSessionRepository.CloseBreak(ctx, brk.ID, now)
				}); err != nil {
					return err
				}
			}
		}
		if err := s.openBreak(ctx, session, now, worksession.CauseIdle); err != nil {
			return err
		}
		s.publish(session.TeamID, sse.EventSessionUpdated, session.ID)

	case !req.IsIdle && session.Status == worksession.StatusOnBreak:
		// Manual intent always wins over the idle detector.
		if req.ManualBreak {
			return nil
		}
		open := session.OpenBreak()
		if open == nil || !isIdleCause(string(open.Cause)) && !open.IsSystemEvent {
			return nil
		}
		if err := s.resumeWorking(ctx, session, now); err != nil {
			return err
		}
		s.publish(session.TeamID, sse.EventSessionUpdated, session.ID)
	}

	return nil
}

// openBreak freezes working time and appends a new open break entry.
func (s *WorkSessionServiceImpl) openBreak(ctx context.Context, session worksession.WorkSession, now time.Time, cause worksession.BreakCause) error {
	totalWork := session.TotalWorkSeconds + elapsedSeconds(session.LastEventAt, now)

	if err := persist(ctx, "append break", func() error {
		_, perr := s.WorkSessionRepository.AppendBreak(ctx, worksession.BreakEntry{
			SessionID: session.ID,
			StartTime: now,
			Cause:     cause,
		})
		return perr
	}); err != nil {
		return err
	}

	s.closeOpenActivity(ctx, session, now)
	if err := persist(ctx, "append break activity", func() error {
		c := cause
		_, perr := s.WorkSessionRepository.AppendActivity(ctx, worksession.ActivityEntry{
			SessionID: session.ID,
			Type:      worksession.ActivityOnBreak,
			Cause:     &c,
			StartTime: now,
		})
		return perr
	}); err != nil {
		return err
	}

	return persist(ctx, "transition to break", func() error {
		return s.WorkSessionRepository.UpdateTransition(ctx, session.ID, worksession.StatusOnBreak, now, totalWork, session.TotalBreakSeconds)
	})
}

// resumeWorking freezes break time, closes the open break, and returns
// the session to the working state.
func (s *WorkSessionServiceImpl) resumeWorking(ctx context.Context, session worksession.WorkSession, now time.Time) error {
	totalBreak := session.TotalBreakSeconds + elapsedSeconds(session.LastEventAt, now)

	if open := session.OpenBreak(); open != nil {
		if err := persist(ctx, "close break", func() error {
			return s.WorkSessionRepository.CloseBreak(ctx, open.ID, now)
		}); err != nil {
			return err
		}
	}

	s.closeOpenActivity(ctx, session, now)
	if err := persist(ctx, "append working activity", func() error {
		_, perr := s.WorkSessionRepository.AppendActivity(ctx, worksession.ActivityEntry{
			SessionID: session.ID,
			Type:      worksession.ActivityWorking,
			StartTime: now,
		})
		return perr
	}); err != nil {
		return err
	}

	return persist(ctx, "transition to working", func() error {
		return s.WorkSessionRepository.UpdateTransition(ctx, session.ID, worksession.StatusWorking, now, session.TotalWorkSeconds, totalBreak)
	})
}

// closeOpenActivity closes the trailing open activity-log entry, if any.
// Best effort: the activity log mirrors the break log for newer readers
// and is reconciled from it when they disagree.
func (s *WorkSessionServiceImpl) closeOpenActivity(ctx context.Context, session worksession.WorkSession, now time.Time) {
	for i := len(session.Activities) - 1; i >= 0; i-- {
		act := session.Activities[i]
		if act.EndTime == nil {
			if err := s.WorkSessionRepository.CloseActivity(ctx, act.ID, now); err != nil {
				slog.Error("Failed to close open activity", "session_id", session.ID, "activity_id", act.ID, "error", err)
			}
			return
		}
	}
}

// GetCurrent implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) GetCurrent(ctx context.Context) (worksession.SessionResponse, error) {
	agentID, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetOpenByAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, worksession.ErrSessionNotFound) {
			return worksession.SessionResponse{}, worksession.ErrNotClockedIn
		}
		return worksession.SessionResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return s.deriveResponse(ctx, session, teamID)
}

// GetTimeline implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) GetTimeline(ctx context.Context, id string) ([]worksession.SegmentResponse, error) {
	_, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.WorkSessionRepository.GetByID(ctx, id, teamID)
	if err != nil {
		return nil, err
	}

	segments := BuildTimeline(session, time.Now().UTC())
	out := make([]worksession.SegmentResponse, 0, len(segments))
	for _, seg := range segments {
		out = append(out, mapSegment(seg))
	}
	return out, nil
}

// GetSummary implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) GetSummary(ctx context.Context, id string) (worksession.DurationSummaryResponse, error) {
	_, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.DurationSummaryResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetByID(ctx, id, teamID)
	if err != nil {
		return worksession.DurationSummaryResponse{}, err
	}

	snapshot, err := s.presenceRepo.GetByAgent(ctx, session.AgentID)
	if err != nil {
		slog.Warn("Presence read failed, assuming attentive", "agent_id", session.AgentID, "error", err)
		snapshot = presence.Presence{AgentID: session.AgentID}
	}

	summary := Aggregate(session, snapshot, time.Now().UTC())
	return worksession.DurationSummaryResponse{
		WorkSeconds:        summary.WorkSeconds,
		ManualBreakSeconds: summary.ManualBreakSeconds,
		IdleBreakSeconds:   summary.IdleBreakSeconds,
	}, nil
}

// ListSessions implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) ListSessions(ctx context.Context, filter worksession.SessionFilter) (worksession.ListSessionsResponse, error) {
	_, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.ListSessionsResponse{}, err
	}

	sessions, total, err := s.WorkSessionRepository.List(ctx, filter, teamID)
	if err != nil {
		return worksession.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	now := time.Now().UTC()
	responses := make([]worksession.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp := mapSessionToResponse(session)
		resp.LateMinutes = s.recomputedLateness(ctx, session)
		summary := Aggregate(session, s.presenceSnapshot(ctx, session.AgentID), now)
		resp.Durations = &worksession.DurationSummaryResponse{
			WorkSeconds:        summary.WorkSeconds,
			ManualBreakSeconds: summary.ManualBreakSeconds,
			IdleBreakSeconds:   summary.IdleBreakSeconds,
		}
		responses = append(responses, resp)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	return worksession.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Sessions:   responses,
	}, nil
}

// UpdateSession implements worksession.WorkSessionService.
// Managers use this to fix wrong clock times; clearing the clock-out
// re-opens the session.
func (s *WorkSessionServiceImpl) UpdateSession(ctx context.Context, req worksession.UpdateSessionRequest) (worksession.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return worksession.SessionResponse{}, err
	}

	_, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetByID(ctx, req.ID, teamID)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	var clockIn, clockOut *time.Time
	if req.ClockInTime != nil {
		if t, parseErr := time.Parse(time.RFC3339, *req.ClockInTime); parseErr == nil {
			utc := t.UTC()
			clockIn = &utc
		}
	}
	if req.ClockOutTime != nil {
		if t, parseErr := time.Parse(time.RFC3339, *req.ClockOutTime); parseErr == nil {
			in := session.ClockIn
			if clockIn != nil {
				in = *clockIn
			}
			resolved := timeutil.ResolveClockOut(in, t.UTC())
			clockOut = &resolved
		}
	}
	var status *worksession.Status
	if req.Status != nil {
		st := worksession.Status(*req.Status)
		status = &st
	} else if req.ClearClockOut && session.Status == worksession.StatusClockedOut {
		st := worksession.StatusWorking
		status = &st
	}

	if err := persist(ctx, "update session times", func() error {
		return s.WorkSessionRepository.UpdateTimes(ctx, session.ID, clockIn, clockOut, req.ClearClockOut, status)
	}); err != nil {
		return worksession.SessionResponse{}, err
	}

	if clockIn != nil && session.ScheduledStart != nil {
		late := LateMinutes(*session.ScheduledStart, *clockIn, s.shiftLocation(ctx, session), session.IsOvernightShift)
		if err := s.WorkSessionRepository.SetLateMinutes(ctx, session.ID, late); err != nil {
			slog.Error("Failed to cache late minutes", "session_id", session.ID, "error", err)
		}
	}

	s.publish(session.TeamID, sse.EventSessionUpdated, session.ID)
	return s.respond(ctx, session.ID, session.AgentID, teamID)
}

// ForceClose implements worksession.WorkSessionService. The session is
// closed at its last known event time: a crashed client stopped telling
// us anything after that instant, so nothing later can be attributed.
func (s *WorkSessionServiceImpl) ForceClose(ctx context.Context, id string) (worksession.SessionResponse, error) {
	_, teamID, err := claimsFromContext(ctx)
	if err != nil {
		return worksession.SessionResponse{}, err
	}

	session, err := s.WorkSessionRepository.GetByID(ctx, id, teamID)
	if err != nil {
		return worksession.SessionResponse{}, err
	}
	if session.Status == worksession.StatusClockedOut {
		return worksession.SessionResponse{}, worksession.ErrSessionClosed
	}

	closeAt := session.LastEventAt
	if open := session.OpenBreak(); open != nil {
		if err := persist(ctx, "close open break", func() error {
			return s.WorkSessionRepository.CloseBreak(ctx, open.ID, closeAt)
		}); err != nil {
			return worksession.SessionResponse{}, err
		}
	}
	s.closeOpenActivity(ctx, session, closeAt)

	if err := persist(ctx, "force close session", func() error {
		return s.WorkSessionRepository.CloseSession(ctx, session.ID, closeAt, closeAt, session.TotalWorkSeconds, session.TotalBreakSeconds)
	}); err != nil {
		return worksession.SessionResponse{}, err
	}

	s.publish(session.TeamID, sse.EventSessionClosed, session.ID)
	return s.respond(ctx, session.ID, session.AgentID, teamID)
}

// ========================================
// helpers
// ========================================

func elapsedSeconds(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	return int64(to.Sub(from).Seconds())
}

func (s *WorkSessionServiceImpl) publish(teamID string, event string, sessionID string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(teamID, sse.Event{
		TeamID: teamID,
		Event:  event,
		Data:   map[string]string{"session_id": sessionID},
	})
}

func (s *WorkSessionServiceImpl) presenceSnapshot(ctx context.Context, agentID string) presence.Presence {
	snapshot, err := s.presenceRepo.GetByAgent(ctx, agentID)
	if err != nil {
		return presence.Presence{AgentID: agentID}
	}
	return snapshot
}

func (s *WorkSessionServiceImpl) shiftLocation(ctx context.Context, session worksession.WorkSession) *time.Location {
	shift, err := s.schedules.GetShift(ctx, session.AgentID, session.ClockIn)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(shift.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// recomputedLateness prefers a fresh computation over the cached
// late_minutes column, which may be stale after manual edits.
func (s *WorkSessionServiceImpl) recomputedLateness(ctx context.Context, session worksession.WorkSession) *int {
	if session.ScheduledStart == nil {
		return session.LateMinutes
	}
	late := LateMinutes(*session.ScheduledStart, session.ClockIn, s.shiftLocation(ctx, session), session.IsOvernightShift)
	return &late
}

func (s *WorkSessionServiceImpl) respond(ctx context.Context, sessionID, agentID, teamID string) (worksession.SessionResponse, error) {
	session, err := s.WorkSessionRepository.GetByID(ctx, sessionID, teamID)
	if err != nil {
		return worksession.SessionResponse{}, fmt.Errorf("failed to get updated session: %w", err)
	}
	return s.deriveResponse(ctx, session, teamID)
}

func (s *WorkSessionServiceImpl) deriveResponse(ctx context.Context, session worksession.WorkSession, teamID string) (worksession.SessionResponse, error) {
	now := time.Now().UTC()

	resp := mapSessionToResponse(session)
	resp.LateMinutes = s.recomputedLateness(ctx, session)

	segments := BuildTimeline(session, now)
	resp.Timeline = make([]worksession.SegmentResponse, 0, len(segments))
	for _, seg := range segments {
		resp.Timeline = append(resp.Timeline, mapSegment(seg))
	}

	summary := Aggregate(session, s.presenceSnapshot(ctx, session.AgentID), now)
	resp.Durations = &worksession.DurationSummaryResponse{
		WorkSeconds:        summary.WorkSeconds,
		ManualBreakSeconds: summary.ManualBreakSeconds,
		IdleBreakSeconds:   summary.IdleBreakSeconds,
	}
	return resp, nil
}

func mapSegment(seg worksession.Segment) worksession.SegmentResponse {
	out := worksession.SegmentResponse{
		Type:            string(seg.Type),
		StartTime:       seg.StartTime.Format(time.RFC3339),
		DurationSeconds: seg.DurationSeconds,
	}
	if seg.EndTime != nil {
		end := seg.EndTime.Format(time.RFC3339)
		out.EndTime = &end
	}
	if seg.Cause != nil {
		cause := string(*seg.Cause)
		out.Cause = &cause
	}
	return out
}

func mapSessionToResponse(session worksession.WorkSession) worksession.SessionResponse {
	resp := worksession.SessionResponse{
		ID:          session.ID,
		AgentID:     session.AgentID,
		AgentName:   session.AgentName,
		Status:      string(session.Status),
		ClockInTime: session.ClockIn.Format(time.RFC3339),
		LastEventAt: session.LastEventAt.Format(time.RFC3339),
		LateMinutes: session.LateMinutes,
	}
	if session.ClockOut != nil {
		out := timeutil.ResolveClockOut(session.ClockIn, *session.ClockOut).Format(time.RFC3339)
		resp.ClockOutTime = &out
	}
	return resp
}
