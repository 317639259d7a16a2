package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/handler/http/response"
)

type PresenceHandler interface {
	Signal(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	sessionService worksession.WorkSessionService
}

func NewPresenceHandler(sessionService worksession.WorkSessionService) PresenceHandler {
	return &presenceHandlerImpl{
		sessionService: sessionService,
	}
}

// Signal implements PresenceHandler. Desktop clients post this on every
// presence change; the call is idempotent for repeated identical flags.
func (h *presenceHandlerImpl) Signal(w http.ResponseWriter, r *http.Request) {
	var req worksession.PresenceSignalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode presence signal", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.sessionService.ApplyPresenceSignal(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Presence recorded", nil)
}
