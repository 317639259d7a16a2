package worksession

import "errors"

// Work session domain errors
var (
	// Transition errors
	ErrAlreadyClockedIn = errors.New("an active session already exists")
	ErrNotClockedIn     = errors.New("no active session found")
	ErrNotWorking       = errors.New("session is not in the working state")
	ErrNotOnBreak       = errors.New("session is not on break")
	ErrSessionClosed    = errors.New("session is already clocked out")

	// General errors
	ErrSessionNotFound = errors.New("work session not found")
	ErrUnauthorized    = errors.New("unauthorized to access this work session")
)
