package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/database"
)

type workSessionRepository struct {
	db *database.DB
}

func NewWorkSessionRepository(db *database.DB) worksession.WorkSessionRepository {
	return &workSessionRepository{db: db}
}

const sessionColumns = `
	id, agent_id, team_id, status, clock_in, clock_out, last_event_at,
	total_work_seconds, total_break_seconds, legacy_segments,
	scheduled_start, is_overnight_shift, late_minutes,
	created_at, updated_at,
	(SELECT a.name FROM agents a WHERE a.id = work_sessions.agent_id) AS agent_name
`

func scanSession(row pgx.Row) (worksession.WorkSession, error) {
	var s worksession.WorkSession
	err := row.Scan(
		&s.ID, &s.AgentID, &s.TeamID, &s.Status, &s.ClockIn, &s.ClockOut, &s.LastEventAt,
		&s.TotalWorkSeconds, &s.TotalBreakSeconds, &s.LegacySegments,
		&s.ScheduledStart, &s.IsOvernightShift, &s.LateMinutes,
		&s.CreatedAt, &s.UpdatedAt, &s.AgentName,
	)
	return s, err
}

// Create implements worksession.WorkSessionRepository.
func (r *workSessionRepository) Create(ctx context.Context, session worksession.WorkSession) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_sessions (
			id, agent_id, team_id, status, clock_in, last_event_at,
			total_work_seconds, total_break_seconds,
			scheduled_start, is_overnight_shift, late_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	session.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		session.ID,
		session.AgentID,
		session.TeamID,
		session.Status,
		session.ClockIn,
		session.LastEventAt,
		session.TotalWorkSeconds,
		session.TotalBreakSeconds,
		session.ScheduledStart,
		session.IsOvernightShift,
		session.LateMinutes,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return worksession.WorkSession{}, fmt.Errorf("failed to create work session: %w", err)
	}

	return session, nil
}

// GetByID implements worksession.WorkSessionRepository.
func (r *workSessionRepository) GetByID(ctx context.Context, id string, teamID string) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE id = $1 AND team_id = $2
	`

	session, err := scanSession(q.QueryRow(ctx, query, id, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSession{}, worksession.ErrSessionNotFound
		}
		return worksession.WorkSession{}, fmt.Errorf("failed to get work session: %w", err)
	}

	if err := r.loadEntries(ctx, &session); err != nil {
		return worksession.WorkSession{}, err
	}
	return session, nil
}

// GetOpenByAgent implements worksession.WorkSessionRepository.
func (r *workSessionRepository) GetOpenByAgent(ctx context.Context, agentID string) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE agent_id = $1
		  AND status <> 'clocked_out'
		ORDER BY clock_in DESC
		LIMIT 1
	`

	session, err := scanSession(q.QueryRow(ctx, query, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSession{}, worksession.ErrSessionNotFound
		}
		return worksession.WorkSession{}, fmt.Errorf("failed to get open session: %w", err)
	}

	if err := r.loadEntries(ctx, &session); err != nil {
		return worksession.WorkSession{}, err
	}
	return session, nil
}

// loadEntries attaches break and activity rows in append order.
func (r *workSessionRepository) loadEntries(ctx context.Context, session *worksession.WorkSession) error {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, session_id, seq, start_time, end_time, cause, is_system_event
		FROM work_session_breaks
		WHERE session_id = $1
		ORDER BY seq ASC
	`, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load break entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b worksession.BreakEntry
		if err := rows.Scan(&b.ID, &b.SessionID, &b.Seq, &b.StartTime, &b.EndTime, &b.Cause, &b.IsSystemEvent); err != nil {
			return fmt.Errorf("failed to scan break entry: %w", err)
		}
		session.Breaks = append(session.Breaks, b)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate break entries: %w", err)
	}

	actRows, err := q.Query(ctx, `
		SELECT id, session_id, seq, type, cause, start_time, end_time, is_system_event
		FROM work_session_activities
		WHERE session_id = $1
		ORDER BY seq ASC
	`, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load activity entries: %w", err)
	}
	defer actRows.Close()

	for actRows.Next() {
		var a worksession.ActivityEntry
		if err := actRows.Scan(&a.ID, &a.SessionID, &a.Seq, &a.Type, &a.Cause, &a.StartTime, &a.EndTime, &a.IsSystemEvent); err != nil {
			return fmt.Errorf("failed to scan activity entry: %w", err)
		}
		session.Activities = append(session.Activities, a)
	}
	if err := actRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate activity entries: %w", err)
	}

	return nil
}

// List implements worksession.WorkSessionRepository.
func (r *workSessionRepository) List(ctx context.Context, filter worksession.SessionFilter, teamID string) ([]worksession.WorkSession, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"team_id = $1"}
	args := []interface{}{teamID}

	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		conditions = append(conditions, fmt.Sprintf("agent_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("clock_in >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("clock_in < $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM work_sessions WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM work_sessions
		WHERE %s
		ORDER BY clock_in DESC
		LIMIT $%d OFFSET $%d
	`, sessionColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []worksession.WorkSession
	for rows.Next() {
		var s worksession.WorkSession
		if err := rows.Scan(
			&s.ID, &s.AgentID, &s.TeamID, &s.Status, &s.ClockIn, &s.ClockOut, &s.LastEventAt,
			&s.TotalWorkSeconds, &s.TotalBreakSeconds, &s.LegacySegments,
			&s.ScheduledStart, &s.IsOvernightShift, &s.LateMinutes,
			&s.CreatedAt, &s.UpdatedAt, &s.AgentName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	for i := range sessions {
		if err := r.loadEntries(ctx, &sessions[i]); err != nil {
			return nil, 0, err
		}
	}

	return sessions, total, nil
}

// GetStaleActive implements worksession.WorkSessionRepository.
func (r *workSessionRepository) GetStaleActive(ctx context.Context, olderThan time.Time) ([]worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE status <> 'clocked_out'
		  AND last_event_at < $1
		ORDER BY last_event_at ASC
	`

	rows, err := q.Query(ctx, query, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale sessions: %w", err)
	}
	defer rows.Close()

	var sessions []worksession.WorkSession
	for rows.Next() {
		var s worksession.WorkSession
		if err := rows.Scan(
			&s.ID, &s.AgentID, &s.TeamID, &s.Status, &s.ClockIn, &s.ClockOut, &s.LastEventAt,
			&s.TotalWorkSeconds, &s.TotalBreakSeconds, &s.LegacySegments,
			&s.ScheduledStart, &s.IsOvernightShift, &s.LateMinutes,
			&s.CreatedAt, &s.UpdatedAt, &s.AgentName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stale session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stale sessions: %w", err)
	}

	for i := range sessions {
		if err := r.loadEntries(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// UpdateTransition implements worksession.WorkSessionRepository.
func (r *workSessionRepository) UpdateTransition(ctx context.Context, sessionID string, status worksession.Status, lastEventAt time.Time, totalWorkSeconds, totalBreakSeconds int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE work_sessions
		SET status = $2, last_event_at = $3,
		    total_work_seconds = $4, total_break_seconds = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, sessionID, status, lastEventAt, totalWorkSeconds, totalBreakSeconds)
	if err != nil {
		return fmt.Errorf("failed to update session transition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksession.ErrSessionNotFound
	}
	return nil
}

// CloseSession implements worksession.WorkSessionRepository.
func (r *workSessionRepository) CloseSession(ctx context.Context, sessionID string, clockOut time.Time, lastEventAt time.Time, totalWorkSeconds, totalBreakSeconds int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE work_sessions
		SET status = 'clocked_out', clock_out = $2, last_event_at = $3,
		    total_work_seconds = $4, total_break_seconds = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, sessionID, clockOut, lastEventAt, totalWorkSeconds, totalBreakSeconds)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksession.ErrSessionNotFound
	}
	return nil
}

// AppendBreak implements worksession.WorkSessionRepository. The sequence
// number comes from the table itself so concurrent appenders never
// clobber each other's entries.
func (r *workSessionRepository) AppendBreak(ctx context.Context, entry worksession.BreakEntry) (worksession.BreakEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO work_session_breaks (id, session_id, seq, start_time, end_time, cause, is_system_event)
		SELECT $1, $2, COALESCE(MAX(seq), -1) + 1, $3, $4, $5, $6
		FROM work_session_breaks WHERE session_id = $2
		RETURNING seq
	`, entry.ID, entry.SessionID, entry.StartTime, entry.EndTime, entry.Cause, entry.IsSystemEvent).Scan(&entry.Seq)
	if err != nil {
		return worksession.BreakEntry{}, fmt.Errorf("failed to append break entry: %w", err)
	}

	return entry, nil
}

// CloseBreak implements worksession.WorkSessionRepository.
func (r *workSessionRepository) CloseBreak(ctx context.Context, breakID string, endTime time.Time) error {
	q := GetQuerier(ctx, r.db)

	// A zero row count means the entry was already closed; the
	// existing end time wins.
	_, err := q.Exec(ctx, `
		UPDATE work_session_breaks
		SET end_time = $2
		WHERE id = $1 AND end_time IS NULL
	`, breakID, endTime)
	if err != nil {
		return fmt.Errorf("failed to close break entry: %w", err)
	}
	return nil
}

// AppendActivity implements worksession.WorkSessionRepository.
func (r *workSessionRepository) AppendActivity(ctx context.Context, entry worksession.ActivityEntry) (worksession.ActivityEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO work_session_activities (id, session_id, seq, type, cause, start_time, end_time, is_system_event)
		SELECT $1, $2, COALESCE(MAX(seq), -1) + 1, $3, $4, $5, $6, $7
		FROM work_session_activities WHERE session_id = $2
		RETURNING seq
	`, entry.ID, entry.SessionID, entry.Type, entry.Cause, entry.StartTime, entry.EndTime, entry.IsSystemEvent).Scan(&entry.Seq)
	if err != nil {
		return worksession.ActivityEntry{}, fmt.Errorf("failed to append activity entry: %w", err)
	}

	return entry, nil
}

// CloseActivity implements worksession.WorkSessionRepository.
func (r *workSessionRepository) CloseActivity(ctx context.Context, activityID string, endTime time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE work_session_activities
		SET end_time = $2
		WHERE id = $1 AND end_time IS NULL
	`, activityID, endTime)
	if err != nil {
		return fmt.Errorf("failed to close activity entry: %w", err)
	}
	return nil
}

// UpdateTimes implements worksession.WorkSessionRepository. Only the
// fields being corrected are touched.
func (r *workSessionRepository) UpdateTimes(ctx context.Context, sessionID string, clockIn *time.Time, clockOut *time.Time, clearClockOut bool, status *worksession.Status) error {
	q := GetQuerier(ctx, r.db)

	set := []string{"updated_at = NOW()"}
	args := []interface{}{sessionID}

	if clockIn != nil {
		args = append(args, *clockIn)
		set = append(set, fmt.Sprintf("clock_in = $%d", len(args)))
	}
	if clockOut != nil {
		args = append(args, *clockOut)
		set = append(set, fmt.Sprintf("clock_out = $%d", len(args)))
	} else if clearClockOut {
		set = append(set, "clock_out = NULL")
	}
	if status != nil {
		args = append(args, *status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf("UPDATE work_sessions SET %s WHERE id = $1", strings.Join(set, ", "))
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session times: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksession.ErrSessionNotFound
	}
	return nil
}

// SetLateMinutes implements worksession.WorkSessionRepository.
func (r *workSessionRepository) SetLateMinutes(ctx context.Context, sessionID string, lateMinutes int) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE work_sessions SET late_minutes = $2, updated_at = NOW() WHERE id = $1
	`, sessionID, lateMinutes)
	if err != nil {
		return fmt.Errorf("failed to set late minutes: %w", err)
	}
	return nil
}
