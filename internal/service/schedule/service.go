package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/schedule"
)

// ScheduleServiceImpl serves shift lookups through an in-process cache.
// Shifts are read on every dashboard tick but edited rarely, so a short
// TTL keeps the database out of the hot path without letting manager
// edits go stale for long.
type ScheduleServiceImpl struct {
	repo  schedule.ScheduleRepository
	cache *otter.Cache[string, schedule.ShiftSchedule]
}

func NewScheduleService(repo schedule.ScheduleRepository) schedule.ScheduleService {
	cache := otter.Must(&otter.Options[string, schedule.ShiftSchedule]{
		MaximumSize:      10_000,
		ExpiryCalculator: otter.ExpiryWriting[string, schedule.ShiftSchedule](5 * time.Minute),
	})
	return &ScheduleServiceImpl{
		repo:  repo,
		cache: cache,
	}
}

func shiftKey(agentID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", agentID, date.UTC().Format("2006-01-02"))
}

// GetShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetShift(ctx context.Context, agentID string, date time.Time) (schedule.ShiftSchedule, error) {
	key := shiftKey(agentID, date)
	if shift, ok := s.cache.GetIfPresent(key); ok {
		return shift, nil
	}

	shift, err := s.repo.GetByAgentAndDate(ctx, agentID, date)
	if err != nil {
		return schedule.ShiftSchedule{}, err
	}

	s.cache.Set(key, shift)
	return shift, nil
}

// PutShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) PutShift(ctx context.Context, shift schedule.ShiftSchedule) (schedule.ShiftSchedule, error) {
	saved, err := s.repo.Upsert(ctx, shift)
	if err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to upsert shift schedule: %w", err)
	}

	s.cache.Set(shiftKey(saved.AgentID, saved.Date), saved)
	return saved, nil
}
