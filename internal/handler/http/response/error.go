package response

import (
	"errors"
	"net/http"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/schedule"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Work session domain errors
	case errors.Is(err, worksession.ErrAlreadyClockedIn):
		Conflict(w, "Agent already has an open session")
	case errors.Is(err, worksession.ErrNotClockedIn):
		Conflict(w, "Agent has no open session")
	case errors.Is(err, worksession.ErrNotWorking):
		Conflict(w, "Session is not in working state")
	case errors.Is(err, worksession.ErrNotOnBreak):
		Conflict(w, "Session is not on break")
	case errors.Is(err, worksession.ErrSessionClosed):
		Conflict(w, "Session is already closed")
	case errors.Is(err, worksession.ErrSessionNotFound):
		NotFound(w, "Work session not found")
	case errors.Is(err, worksession.ErrUnauthorized):
		Unauthorized(w, "Unauthorized")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Shift schedule not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
