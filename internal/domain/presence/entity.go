package presence

import "time"

// Presence is the latest desktop-client snapshot for an agent. It is a
// read-only side channel into the session state machine; this service
// never writes it except to record the incoming signal.
type Presence struct {
	AgentID     string
	IsIdle      bool
	ManualBreak bool
	IsAway      bool
	UpdatedAt   time.Time
}

// AccruesWork reports whether live working time may accrue under this
// snapshot. Exactly one bucket accrues at a time; any asserted flag
// hands the live interval to a break bucket instead.
func (p Presence) AccruesWork() bool {
	return !p.IsIdle && !p.ManualBreak && !p.IsAway
}
