package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dwell/internal/modules/screen/domain"
	screenout "dwell/internal/modules/screen/port/out"
	apperrors "dwell/internal/platform/errors"
	"dwell/internal/platform/timeutil"
)

type SQLiteDayStore struct {
	db *sql.DB
}

func NewSQLiteDayStore(db *sql.DB) (screenout.DayStore, error) {
	store := &SQLiteDayStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteDayStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS screen_days (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_date TEXT NOT NULL UNIQUE,
  day_anchor_time TEXT NOT NULL,
  last_checkpoint_time TEXT NOT NULL,
  accumulated_active_seconds INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS screen_segments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_date TEXT NOT NULL,
  start_time TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_screen_segments_date ON screen_segments(session_date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create screen tables: %w", err)
	}
	return nil
}

func (s *SQLiteDayStore) LoadDay(ctx context.Context, dayKey string) (domain.DayAggregate, error) {
	const query = `
SELECT session_date, day_anchor_time, last_checkpoint_time, accumulated_active_seconds
FROM screen_days WHERE session_date = ?`
	var (
		day        domain.DayAggregate
		anchor     string
		checkpoint string
	)
	err := s.db.QueryRowContext(ctx, query, dayKey).Scan(
		&day.SessionDate, &anchor, &checkpoint, &day.ActiveSeconds,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DayAggregate{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.DayAggregate{}, fmt.Errorf("load screen day: %w", err)
	}
	if day.DayAnchor, err = timeutil.ParseStamp(anchor); err != nil {
		return domain.DayAggregate{}, fmt.Errorf("parse day anchor: %w", err)
	}
	if day.LastCheckpoint, err = timeutil.ParseStamp(checkpoint); err != nil {
		return domain.DayAggregate{}, fmt.Errorf("parse checkpoint: %w", err)
	}
	return day, nil
}

func (s *SQLiteDayStore) InsertDay(ctx context.Context, day domain.DayAggregate) error {
	const stmt = `
INSERT INTO screen_days (session_date, day_anchor_time, last_checkpoint_time, accumulated_active_seconds)
VALUES (?, ?, ?, ?)
ON CONFLICT(session_date) DO NOTHING`
	_, err := s.db.ExecContext(ctx, stmt,
		day.SessionDate,
		timeutil.FormatStamp(day.DayAnchor),
		timeutil.FormatStamp(day.LastCheckpoint),
		day.ActiveSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert screen day: %w", err)
	}
	return nil
}

func (s *SQLiteDayStore) UpdateDay(ctx context.Context, day domain.DayAggregate) error {
	const stmt = `
UPDATE screen_days
SET last_checkpoint_time = ?, accumulated_active_seconds = ?
WHERE session_date = ?`
	_, err := s.db.ExecContext(ctx, stmt,
		timeutil.FormatStamp(day.LastCheckpoint),
		day.ActiveSeconds,
		day.SessionDate,
	)
	if err != nil {
		return fmt.Errorf("update screen day: %w", err)
	}
	return nil
}

func (s *SQLiteDayStore) InsertSegment(ctx context.Context, segment domain.Segment) error {
	const stmt = `
INSERT INTO screen_segments (session_date, start_time, duration_seconds)
VALUES (?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		segment.SessionDate,
		timeutil.FormatStamp(segment.Start),
		segment.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert screen segment: %w", err)
	}
	return nil
}

func (s *SQLiteDayStore) CountSegments(ctx context.Context, dayKey string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM screen_segments WHERE session_date = ?`, dayKey,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count screen segments: %w", err)
	}
	return count, nil
}
