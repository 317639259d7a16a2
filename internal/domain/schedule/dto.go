package schedule

import (
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/validator"
)

// UpsertShiftRequest creates or replaces an agent's planned shift for a
// work date.
type UpsertShiftRequest struct {
	AgentID     string `json:"agent_id"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	StartTime   string `json:"start_time"`
	IsOvernight bool   `json:"is_overnight,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

func (r *UpsertShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AgentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "agent_id",
			Message: "agent_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.Timezone != "" && !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID          string `json:"id"`
	AgentID     string `json:"agent_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	IsOvernight bool   `json:"is_overnight"`
	Timezone    string `json:"timezone"`
}
