package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/database"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/sse"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/repository/postgresql"
)

type WorkSessionJobs struct {
	sessionRepo    worksession.WorkSessionRepository
	hub            *sse.Hub
	db             *database.DB
	staleThreshold time.Duration
}

func NewWorkSessionJobs(
	sessionRepo worksession.WorkSessionRepository,
	hub *sse.Hub,
	db *database.DB,
	staleThreshold time.Duration,
) *WorkSessionJobs {
	return &WorkSessionJobs{
		sessionRepo:    sessionRepo,
		hub:            hub,
		db:             db,
		staleThreshold: staleThreshold,
	}
}

func (j *WorkSessionJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("force_close_stale_sessions", interval, j.ForceCloseStaleSessions)
}

// ForceCloseStaleSessions closes sessions whose agents went silent. The
// close lands at the last known event, not at sweep time, so an agent
// whose machine died at 17:00 is not credited until the next morning.
func (j *WorkSessionJobs) ForceCloseStaleSessions(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.staleThreshold)

	staleSessions, err := j.sessionRepo.GetStaleActive(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	slog.Info("Cron: Closing stale sessions", "count", len(staleSessions))

	closedCount := 0
	for _, session := range staleSessions {
		// A session abandoned mid-break keeps its frozen totals; one
		// abandoned while working gets no credit past last_event_at,
		// which the totals already reflect. Break close and session
		// close land together or not at all.
		err := postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			if open := session.OpenBreak(); open != nil {
				if err := j.sessionRepo.CloseBreak(txCtx, open.ID, session.LastEventAt); err != nil {
					return err
				}
			}
			return j.sessionRepo.CloseSession(txCtx, session.ID, session.LastEventAt, session.LastEventAt, session.TotalWorkSeconds, session.TotalBreakSeconds)
		})
		if err != nil {
			slog.Error("Cron: Failed to close stale session", "session_id", session.ID, "error", err)
			continue
		}

		j.hub.Publish(session.TeamID, sse.Event{
			TeamID: session.TeamID,
			Event:  sse.EventSessionClosed,
			Data: map[string]interface{}{
				"session_id": session.ID,
				"agent_id":   session.AgentID,
				"reason":     "stale",
			},
		})
		closedCount++
	}

	slog.Info("Cron: Stale session sweep finished", "closed", closedCount, "total", len(staleSessions))
	return nil
}
