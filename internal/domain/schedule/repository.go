package schedule

import (
	"context"
	"time"
)

// ScheduleRepository defines data access for shift schedules.
type ScheduleRepository interface {
	// GetByAgentAndDate returns the shift planned for the agent on the
	// given work date.
	GetByAgentAndDate(ctx context.Context, agentID string, date time.Time) (ShiftSchedule, error)

	// Upsert creates or replaces the shift for an agent and date.
	Upsert(ctx context.Context, s ShiftSchedule) (ShiftSchedule, error)
}

// ScheduleService is the read side consumed by the lateness calculation.
// Implementations may cache: schedules are read on every dashboard tick
// but change rarely.
type ScheduleService interface {
	GetShift(ctx context.Context, agentID string, date time.Time) (ShiftSchedule, error)
	PutShift(ctx context.Context, s ShiftSchedule) (ShiftSchedule, error)
}
