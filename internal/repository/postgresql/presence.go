package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/presence"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/database"
)

type presenceRepository struct {
	db *database.DB
}

func NewPresenceRepository(db *database.DB) presence.PresenceRepository {
	return &presenceRepository{db: db}
}

// Upsert implements presence.PresenceRepository.
func (r *presenceRepository) Upsert(ctx context.Context, p presence.Presence) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO agent_presence (agent_id, is_idle, manual_break, is_away, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (agent_id) DO UPDATE
		SET is_idle = EXCLUDED.is_idle,
		    manual_break = EXCLUDED.manual_break,
		    is_away = EXCLUDED.is_away,
		    updated_at = NOW()
	`, p.AgentID, p.IsIdle, p.ManualBreak, p.IsAway)
	if err != nil {
		return fmt.Errorf("failed to upsert presence: %w", err)
	}
	return nil
}

// GetByAgent implements presence.PresenceRepository. An agent without a
// stored snapshot reads back as attentive.
func (r *presenceRepository) GetByAgent(ctx context.Context, agentID string) (presence.Presence, error) {
	q := GetQuerier(ctx, r.db)

	var p presence.Presence
	err := q.QueryRow(ctx, `
		SELECT agent_id, is_idle, manual_break, is_away, updated_at
		FROM agent_presence
		WHERE agent_id = $1
	`, agentID).Scan(&p.AgentID, &p.IsIdle, &p.ManualBreak, &p.IsAway, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return presence.Presence{AgentID: agentID}, nil
		}
		return presence.Presence{}, fmt.Errorf("failed to get presence: %w", err)
	}
	return p, nil
}
