package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/schedule"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// GetByAgentAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByAgentAndDate(ctx context.Context, agentID string, date time.Time) (schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	var s schedule.ShiftSchedule
	err := q.QueryRow(ctx, `
		SELECT id, agent_id, team_id, date, start_time, is_overnight, timezone, created_at, updated_at
		FROM shift_schedules
		WHERE agent_id = $1 AND date = $2::date
	`, agentID, date).Scan(
		&s.ID, &s.AgentID, &s.TeamID, &s.Date, &s.StartTime, &s.IsOvernight, &s.Timezone,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}
	return s, nil
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepository) Upsert(ctx context.Context, s schedule.ShiftSchedule) (schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, `
		INSERT INTO shift_schedules (id, agent_id, team_id, date, start_time, is_overnight, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (agent_id, date) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    is_overnight = EXCLUDED.is_overnight,
		    timezone = EXCLUDED.timezone,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, s.ID, s.AgentID, s.TeamID, s.Date, s.StartTime, s.IsOvernight, s.Timezone).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to upsert shift schedule: %w", err)
	}
	return s, nil
}
