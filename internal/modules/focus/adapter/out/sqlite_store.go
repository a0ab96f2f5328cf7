package out

import (
	"context"
	"database/sql"
	"fmt"

	"dwell/internal/modules/focus/domain"
	focusout "dwell/internal/modules/focus/port/out"
	"dwell/internal/platform/timeutil"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (focusout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS focus_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_date TEXT NOT NULL,
  app_name TEXT NOT NULL,
  executable_path TEXT NOT NULL,
  window_title TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_focus_sessions_date ON focus_sessions(session_date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create focus tables: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) InsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO focus_sessions (session_date, app_name, executable_path, window_title, start_time, end_time, duration_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		session.SessionDate,
		session.AppName,
		session.ExecutablePath,
		session.WindowTitle,
		timeutil.FormatStamp(session.Start),
		timeutil.FormatStamp(session.End),
		session.DurationSeconds(),
	)
	if err != nil {
		return fmt.Errorf("insert focus session: %w", err)
	}
	return nil
}
