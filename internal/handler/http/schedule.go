package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/schedule"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Upsert implements ScheduleHandler.
func (h *scheduleHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode shift request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	teamID, _ := claims["team_id"].(string)

	date, _ := time.Parse("2006-01-02", req.Date)
	result, err := h.scheduleService.PutShift(r.Context(), schedule.ShiftSchedule{
		AgentID:     req.AgentID,
		TeamID:      teamID,
		Date:        date,
		StartTime:   req.StartTime,
		IsOvernight: req.IsOvernight,
		Timezone:    req.Timezone,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift saved", mapShiftToResponse(result))
}

// Get implements ScheduleHandler.
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	agentID := r.URL.Query().Get("agent_id")
	dateStr := r.URL.Query().Get("date")
	if agentID == "" || dateStr == "" {
		response.BadRequest(w, "agent_id and date are required", nil)
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.scheduleService.GetShift(r.Context(), agentID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapShiftToResponse(result))
}

func mapShiftToResponse(s schedule.ShiftSchedule) schedule.ShiftResponse {
	return schedule.ShiftResponse{
		ID:          s.ID,
		AgentID:     s.AgentID,
		Date:        s.Date.Format("2006-01-02"),
		StartTime:   s.StartTime,
		IsOvernight: s.IsOvernight,
		Timezone:    s.Timezone,
	}
}
