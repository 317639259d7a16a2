package presence

import "context"

// PresenceRepository stores the latest snapshot per agent.
type PresenceRepository interface {
	// Upsert replaces the agent's snapshot with the incoming signal.
	Upsert(ctx context.Context, p Presence) error

	// GetByAgent returns the latest snapshot. Absent rows come back as a
	// zero-value snapshot (all flags false), not an error: a client that
	// has never reported presence is treated as attentive.
	GetByAgent(ctx context.Context, agentID string) (Presence, error)
}
