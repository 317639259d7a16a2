package worksession

import (
	"time"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/validator"
)

// ========================================
// WORK SESSION DTOs
// ========================================

type ClockInRequest struct {
	ScheduledStart   *string `json:"scheduled_start,omitempty"` // "HH:MM"
	IsOvernightShift bool    `json:"is_overnight_shift,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ScheduledStart != nil && !validator.IsValidClockTime(*r.ScheduledStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_start",
			Message: "scheduled_start must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PresenceSignalRequest struct {
	IsIdle      bool `json:"is_idle"`
	ManualBreak bool `json:"manual_break"`
	IsAway      bool `json:"is_away"`
}

// UpdateSessionRequest is the manager correction edit. Clearing the
// clock-out re-opens a closed session.
type UpdateSessionRequest struct {
	ID            string  `json:"-"`
	ClockInTime   *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime  *string `json:"clock_out_time,omitempty"` // RFC3339
	ClearClockOut bool    `json:"clear_clock_out,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r *UpdateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "session id is required",
		})
	}

	if r.ClockInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an ISO8601 timestamp",
			})
		}
	}

	if r.ClockOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an ISO8601 timestamp",
			})
		}
	}

	if r.ClockOutTime != nil && r.ClearClockOut {
		errs = append(errs, validator.ValidationError{
			Field:   "clear_clock_out",
			Message: "clear_clock_out cannot be combined with clock_out_time",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of working, on_break, clocked_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionFilter struct {
	AgentID  *string
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type SegmentResponse struct {
	Type            string  `json:"type"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationSeconds int64   `json:"duration_seconds"`
	Cause           *string `json:"cause,omitempty"`
}

type DurationSummaryResponse struct {
	WorkSeconds        int64 `json:"work_seconds"`
	ManualBreakSeconds int64 `json:"manual_break_seconds"`
	IdleBreakSeconds   int64 `json:"idle_break_seconds"`
}

type SessionResponse struct {
	ID                string                   `json:"id"`
	AgentID           string                   `json:"agent_id"`
	AgentName         *string                  `json:"agent_name,omitempty"`
	Status            string                   `json:"status"`
	ClockInTime       string                   `json:"clock_in_time"`
	ClockOutTime      *string                  `json:"clock_out_time,omitempty"`
	LastEventAt       string                   `json:"last_event_at"`
	LateMinutes       *int                     `json:"late_minutes,omitempty"`
	Timeline          []SegmentResponse        `json:"timeline,omitempty"`
	Durations         *DurationSummaryResponse `json:"durations,omitempty"`
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Sessions   []SessionResponse `json:"sessions"`
}
