package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("no shift schedule found for this agent and date")
)
