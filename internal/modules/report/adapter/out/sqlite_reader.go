package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dwell/internal/modules/report/domain"
	reportout "dwell/internal/modules/report/port/out"
	"dwell/internal/platform/timeutil"
)

// SQLiteHistoryReader reads the tracking tables written by the screen, focus
// and sound stores. It owns no schema: the writers create their tables, and a
// missing table simply means no rows yet.
type SQLiteHistoryReader struct {
	db *sql.DB
}

func NewSQLiteHistoryReader(db *sql.DB) reportout.HistoryStore {
	return &SQLiteHistoryReader{db: db}
}

func (r *SQLiteHistoryReader) ActiveSecondsForDate(ctx context.Context, dayKey string) (int, error) {
	var seconds int
	err := r.db.QueryRowContext(ctx,
		`SELECT accumulated_active_seconds FROM screen_days WHERE session_date = ?`, dayKey,
	).Scan(&seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query screen day: %w", err)
	}
	return seconds, nil
}

func (r *SQLiteHistoryReader) FocusSecondsForDate(ctx context.Context, dayKey string) (int, error) {
	var seconds int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration_seconds), 0) FROM focus_sessions WHERE session_date = ?`, dayKey,
	).Scan(&seconds)
	if err != nil {
		return 0, fmt.Errorf("sum focus sessions: %w", err)
	}
	return seconds, nil
}

func (r *SQLiteHistoryReader) ListeningSecondsForDate(ctx context.Context, dayKey string) (int, error) {
	var seconds int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(listening_seconds), 0) FROM sound_sessions WHERE session_date = ?`, dayKey,
	).Scan(&seconds)
	if err != nil {
		return 0, fmt.Errorf("sum sound sessions: %w", err)
	}
	return seconds, nil
}

func (r *SQLiteHistoryReader) SegmentsForDate(ctx context.Context, dayKey string) ([]domain.Segment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT start_time, duration_seconds
FROM screen_segments WHERE session_date = ?
ORDER BY start_time ASC`, dayKey)
	if err != nil {
		return nil, fmt.Errorf("query screen segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.Segment
	for rows.Next() {
		var (
			seg   domain.Segment
			start string
		)
		if err := rows.Scan(&start, &seg.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan screen segment: %w", err)
		}
		if seg.Start, err = timeutil.ParseStamp(start); err != nil {
			return nil, fmt.Errorf("parse segment start: %w", err)
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

func (r *SQLiteHistoryReader) FocusSessionsForDate(ctx context.Context, dayKey string) ([]domain.FocusRow, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT app_name, start_time, end_time, duration_seconds
FROM focus_sessions WHERE session_date = ?
ORDER BY start_time ASC`, dayKey)
	if err != nil {
		return nil, fmt.Errorf("query focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.FocusRow
	for rows.Next() {
		var (
			row        domain.FocusRow
			start, end string
		)
		if err := rows.Scan(&row.AppName, &start, &end, &row.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan focus session: %w", err)
		}
		if row.Start, err = timeutil.ParseStamp(start); err != nil {
			return nil, fmt.Errorf("parse focus start: %w", err)
		}
		if row.End, err = timeutil.ParseStamp(end); err != nil {
			return nil, fmt.Errorf("parse focus end: %w", err)
		}
		sessions = append(sessions, row)
	}
	return sessions, rows.Err()
}

func (r *SQLiteHistoryReader) SoundSessionsForDate(ctx context.Context, dayKey string) ([]domain.SoundRow, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT device_name, device_type, start_time, end_time, listening_seconds, avg_volume, estimated_max_db, was_harmful
FROM sound_sessions WHERE session_date = ?
ORDER BY start_time ASC`, dayKey)
	if err != nil {
		return nil, fmt.Errorf("query sound sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SoundRow
	for rows.Next() {
		var (
			row        domain.SoundRow
			start, end string
			harmful    int
		)
		if err := rows.Scan(&row.DeviceName, &row.DeviceType, &start, &end, &row.ListeningSeconds, &row.AvgVolume, &row.EstimatedMaxDB, &harmful); err != nil {
			return nil, fmt.Errorf("scan sound session: %w", err)
		}
		if row.Start, err = timeutil.ParseStamp(start); err != nil {
			return nil, fmt.Errorf("parse sound start: %w", err)
		}
		if row.End, err = timeutil.ParseStamp(end); err != nil {
			return nil, fmt.Errorf("parse sound end: %w", err)
		}
		row.WasHarmful = harmful != 0
		sessions = append(sessions, row)
	}
	return sessions, rows.Err()
}

func (r *SQLiteHistoryReader) TopAppsForDate(ctx context.Context, dayKey string, limit int) ([]domain.AppTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT app_name, SUM(duration_seconds) AS total
FROM focus_sessions WHERE session_date = ?
GROUP BY app_name
ORDER BY total DESC
LIMIT ?`, dayKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query top apps: %w", err)
	}
	defer rows.Close()

	var apps []domain.AppTotal
	for rows.Next() {
		var app domain.AppTotal
		if err := rows.Scan(&app.AppName, &app.TotalSeconds); err != nil {
			return nil, fmt.Errorf("scan app total: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
